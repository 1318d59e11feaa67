package diagram

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/boxscene/pkg/boxmodel"
	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/geom"
	"github.com/matzehuels/boxscene/pkg/measure"
	"github.com/matzehuels/boxscene/pkg/scene"
)

// ArtboardID is the reserved id of the artboard in parent and target
// references.
const ArtboardID = "artboard"

// MaxElements is the largest number of elements a document may declare.
const MaxElements = 10000

// Build validates the document and constructs a settled scene. Elements are
// created in document order, then attached, positioned and transformed, so
// references may point forward in the file.
func Build(doc *Document, opts ...scene.Option) (*scene.Scene, error) {
	return BuildContext(context.Background(), doc, opts...)
}

// BuildContext is Build with cancellation. The scene is laid out once, after
// every element is in place; ctx is checked between elements and between
// layout passes.
func BuildContext(ctx context.Context, doc *Document, opts ...scene.Option) (*scene.Scene, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	s, err := scene.New(scene.ArtboardConfig{
		Width:      doc.Artboard.Width.Length,
		Height:     doc.Artboard.Height.Length,
		Background: doc.Artboard.Background,
		Box:        boxConfig(doc.Artboard.Margin, doc.Artboard.Border, doc.Artboard.Padding),
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "artboard")
	}

	b := &builder{doc: doc, s: s, ids: map[string]scene.ID{ArtboardID: s.Root()}}
	err = s.Batch(ctx, func() error {
		for _, step := range []func(Element) error{b.create, b.attach, b.position, b.transform} {
			for _, el := range doc.Elements {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := step(el); err != nil {
					return errors.Wrap(errors.GetCode(err), err, "element %q", el.ID)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks everything that does not require building the scene.
func (d *Document) Validate() error {
	if len(d.Elements) > MaxElements {
		return errors.New(errors.ErrCodeInvalidDiagram, "diagram has %d elements, the limit is %d", len(d.Elements), MaxElements)
	}
	seen := map[string]bool{ArtboardID: true}
	for i, el := range d.Elements {
		if err := errors.ValidateElementID(el.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "element #%d", i+1)
		}
		if seen[el.ID] {
			return errors.New(errors.ErrCodeInvalidDiagram, "duplicate element id %q", el.ID)
		}
		seen[el.ID] = true

		switch el.Kind {
		case "rect", "circle", "text", "container":
		case "":
			return errors.New(errors.ErrCodeMissingParam, "element %q: kind is required", el.ID)
		default:
			return errors.New(errors.ErrCodeInvalidDiagram, "element %q: unknown kind %q", el.ID, el.Kind)
		}
		for _, c := range []string{el.Fill, el.Stroke} {
			if err := errors.ValidateColor(c); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "element %q", el.ID)
			}
		}
		if el.Detached && el.Parent != "" {
			return errors.New(errors.ErrCodeInvalidDiagram, "element %q: detached elements cannot have a parent", el.ID)
		}
		if el.Cell != nil && len(el.Cell) != 2 {
			return errors.New(errors.ErrCodeInvalidDiagram, "element %q: cell must be [row, col]", el.ID)
		}
		if el.Opacity < 0 || el.Opacity > 1 || math.IsNaN(el.Opacity) {
			return errors.New(errors.ErrCodeInvalidDiagram, "element %q: opacity must be within [0, 1]", el.ID)
		}
	}
	for _, el := range d.Elements {
		if el.Parent != "" && !seen[el.Parent] {
			return errors.New(errors.ErrCodeUnknownElement, "element %q: unknown parent %q", el.ID, el.Parent)
		}
		for _, t := range []Target{positionTarget(el), rotationTarget(el)} {
			if t.ID != "" && !seen[t.ID] {
				return errors.New(errors.ErrCodeUnknownElement, "element %q: unknown target %q", el.ID, t.ID)
			}
		}
	}
	return errors.ValidateColor(d.Artboard.Background)
}

func positionTarget(el Element) Target {
	if el.Position == nil {
		return Target{}
	}
	return el.Position.To
}

func rotationTarget(el Element) Target {
	if el.Rotate == nil {
		return Target{}
	}
	return el.Rotate.About
}

type builder struct {
	doc *Document
	s   *scene.Scene
	ids map[string]scene.ID
}

func (b *builder) create(el Element) error {
	box := boxConfig(el.Margin, el.Border, el.Padding)
	style := scene.Style{
		Fill:         el.Fill,
		Stroke:       el.Stroke,
		StrokeWidth:  el.StrokeWidth,
		Opacity:      el.Opacity,
		CornerRadius: el.CornerRadius,
		Class:        el.Class,
	}

	var (
		id  scene.ID
		err error
	)
	switch el.Kind {
	case "rect":
		id, err = b.s.Rect(scene.RectConfig{Name: el.ID, Width: el.Width.Length, Height: el.Height.Length, Box: box, Style: style})
	case "circle":
		id, err = b.s.Circle(scene.CircleConfig{Name: el.ID, Radius: el.Radius, Box: box, Style: style})
	case "text":
		id, err = b.s.Text(scene.TextConfig{
			Name:  el.ID,
			Text:  el.Text,
			Font:  measure.Style{FontFamily: el.Font, FontSize: el.FontSize, Bold: el.Bold},
			Box:   box,
			Style: style,
		})
	case "container":
		var layout scene.Arranger
		if layout, err = el.arranger(); err != nil {
			return err
		}
		id, err = b.s.Container(scene.ContainerConfig{
			Name: el.ID, Width: el.Width.Length, Height: el.Height.Length,
			Box: box, Style: style, Layout: layout,
		})
	}
	if err != nil {
		return err
	}
	b.ids[el.ID] = id
	return nil
}

func (el Element) arranger() (scene.Arranger, error) {
	align, err := geom.ParseAlign(el.Align)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "align")
	}
	switch el.Layout {
	case "", "freeform":
		return scene.Freeform{}, nil
	case "none", "manual":
		return scene.Manual{}, nil
	case "vstack", "hstack":
		axis := scene.Vertical
		if el.Layout == "hstack" {
			axis = scene.Horizontal
		}
		return scene.Stack{Axis: axis, Spacing: el.Spacing, Align: align, RespectMargin: el.RespectMargin}, nil
	case "grid":
		h, err := geom.ParseAlign(el.HAlign)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "halign")
		}
		v, err := geom.ParseAlign(el.VAlign)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "valign")
		}
		return scene.Grid{
			Columns: el.Columns, Rows: el.Rows,
			CellWidth: el.CellWidth, CellHeight: el.CellHeight,
			ColumnGap: el.ColumnGap, RowGap: el.RowGap,
			HAlign: h, VAlign: v,
		}, nil
	case "columns":
		return scene.Columns{Count: el.Columns, Gutter: el.Gutter, LaneWidth: el.LaneWidth}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidDiagram, "unknown layout %q", el.Layout)
}

func (b *builder) attach(el Element) error {
	if el.Detached {
		return nil
	}
	id := b.ids[el.ID]
	parentName := el.Parent
	if parentName == "" {
		parentName = ArtboardID
	}
	parent := b.ids[parentName]

	switch {
	case el.Column != nil:
		lane, ok := b.s.Column(parent, *el.Column)
		if !ok {
			return errors.New(errors.ErrCodeInvalidTarget, "%q has no column %d", parentName, *el.Column)
		}
		return b.s.AddElement(lane, id)
	case el.Cell != nil:
		return b.s.AddElementAt(parent, id, el.Cell[0], el.Cell[1])
	}
	return b.s.AddElement(parent, id)
}

func (b *builder) position(el Element) error {
	if el.Position == nil {
		return nil
	}
	from, err := geom.ParseAnchor(el.Position.From)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "position.from")
	}
	layer, err := scene.ParseLayer(el.Position.Layer)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "position.layer")
	}
	return b.s.Position(b.ids[el.ID], scene.PositionSpec{
		RelativeFrom: from,
		BoxReference: layer,
		RelativeTo:   b.ref(el.Position.To),
		X:            el.Position.X,
		Y:            el.Position.Y,
	})
}

func (b *builder) transform(el Element) error {
	id := b.ids[el.ID]
	if el.Translate != nil {
		d := el.Translate.Point
		v := geom.Vector{X: d.X, Y: d.Y}
		if err := b.s.Translate(id, scene.TranslateSpec{Along: v, Distance: v.Length()}); err != nil {
			return err
		}
	}
	if el.Rotate != nil {
		var about scene.Ref
		if !el.Rotate.About.IsZero() {
			about = b.ref(el.Rotate.About)
		}
		if err := b.s.Rotate(id, scene.RotateSpec{RelativeTo: about, Deg: el.Rotate.Deg}); err != nil {
			return err
		}
	}
	if el.Z != nil {
		return b.s.SetZIndex(id, *el.Z)
	}
	return nil
}

func (b *builder) ref(t Target) scene.Ref {
	if t.ID == "" {
		return scene.At(t.Point.X, t.Point.Y)
	}
	return scene.AnchorOf(b.ids[t.ID], t.Anchor).On(t.Layer)
}

func boxConfig(margin, border, padding BoxSpec) boxmodel.Config {
	return boxmodel.Config{Margin: margin.Spec, Border: border.Spec, Padding: padding.Spec}
}

// Summary describes a document in one line.
func (d *Document) Summary() string {
	kinds := map[string]int{}
	for _, el := range d.Elements {
		kinds[el.Kind]++
	}
	return fmt.Sprintf("%d elements (%d containers, %d shapes, %d texts)",
		len(d.Elements), kinds["container"], kinds["rect"]+kinds["circle"], kinds["text"])
}
