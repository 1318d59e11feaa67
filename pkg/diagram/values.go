package diagram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/boxscene/pkg/boxmodel"
	"github.com/matzehuels/boxscene/pkg/geom"
	"github.com/matzehuels/boxscene/pkg/scene"
)

// Dimension is a width or height: a number, "Npx" or "auto".
type Dimension struct {
	scene.Length
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Dimension) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		d.Length = scene.Px(float64(x))
	case float64:
		d.Length = scene.Px(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "auto" {
			d.Length = scene.Auto()
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
		if err != nil {
			return fmt.Errorf("invalid dimension %q", x)
		}
		d.Length = scene.Px(f)
	default:
		return fmt.Errorf("invalid dimension of type %T", v)
	}
	return nil
}

// BoxSpec is a margin, border or padding value.
type BoxSpec struct {
	boxmodel.Spec
}

// UnmarshalTOML implements toml.Unmarshaler.
func (b *BoxSpec) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		b.Spec = boxmodel.All(float64(x))
	case float64:
		b.Spec = boxmodel.All(x)
	case string:
		spec, err := boxmodel.ParseShorthand(x)
		if err != nil {
			return err
		}
		b.Spec = spec
	case map[string]any:
		for k, raw := range x {
			f, ok := number(raw)
			if !ok {
				return fmt.Errorf("box side %q must be a number", k)
			}
			switch k {
			case "all":
				b.Uniform = boxmodel.Value(f)
			case "top":
				b.Top = boxmodel.Value(f)
			case "right":
				b.Right = boxmodel.Value(f)
			case "bottom":
				b.Bottom = boxmodel.Value(f)
			case "left":
				b.Left = boxmodel.Value(f)
			default:
				return fmt.Errorf("unknown box side %q", k)
			}
		}
	default:
		return fmt.Errorf("invalid box spec of type %T", v)
	}
	return nil
}

// Target is a position or rotation reference.
type Target struct {
	// Element reference, when ID is set.
	ID     string
	Anchor geom.Anchor
	Layer  scene.Layer

	// Literal point otherwise.
	Point geom.Point
	set   bool
}

// IsZero reports whether the target was omitted.
func (t Target) IsZero() bool { return !t.set }

// UnmarshalTOML implements toml.Unmarshaler.
func (t *Target) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		return t.parse(x)
	case []any:
		if len(x) != 2 {
			return fmt.Errorf("literal target needs [x, y], got %d values", len(x))
		}
		px, okx := number(x[0])
		py, oky := number(x[1])
		if !okx || !oky {
			return fmt.Errorf("literal target must hold numbers")
		}
		*t = Target{Point: geom.Pt(px, py), set: true}
		return nil
	}
	return fmt.Errorf("invalid target of type %T", v)
}

// ParseTarget parses "id", "id.anchor" or "id.anchor@layer".
func ParseTarget(s string) (Target, error) {
	var t Target
	err := t.parse(s)
	return t, err
}

func (t *Target) parse(s string) error {
	ref, layerName, _ := strings.Cut(strings.TrimSpace(s), "@")
	id, anchorName, _ := strings.Cut(ref, ".")
	if id == "" {
		return fmt.Errorf("target %q has no element id", s)
	}
	anchor, err := geom.ParseAnchor(anchorName)
	if err != nil {
		return err
	}
	layer, err := scene.ParseLayer(layerName)
	if err != nil {
		return err
	}
	*t = Target{ID: id, Anchor: anchor, Layer: layer, set: true}
	return nil
}

func (t Target) String() string {
	if t.ID == "" {
		return fmt.Sprintf("[%g, %g]", t.Point.X, t.Point.Y)
	}
	return fmt.Sprintf("%s.%s@%s", t.ID, t.Anchor, t.Layer)
}

// Point2 is a [x, y] pair.
type Point2 struct {
	geom.Point
}

// UnmarshalTOML implements toml.Unmarshaler.
func (p *Point2) UnmarshalTOML(v any) error {
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return fmt.Errorf("expected [x, y]")
	}
	x, okx := number(arr[0])
	y, oky := number(arr[1])
	if !okx || !oky {
		return fmt.Errorf("expected numeric [x, y]")
	}
	p.Point = geom.Pt(x, y)
	return nil
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
