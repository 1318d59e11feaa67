package scene

import (
	"fmt"
	"math"

	"github.com/matzehuels/boxscene/pkg/boxmodel"
	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/geom"
	"github.com/matzehuels/boxscene/pkg/measure"
)

// RectConfig describes a rectangle. Width and Height are required fixed
// content dimensions.
type RectConfig struct {
	Name          string
	Width, Height Length
	Box           boxmodel.Config
	Style         Style
}

// CircleConfig describes a circle. Its content box is the bounding square of
// the circle.
type CircleConfig struct {
	Name   string
	Radius float64
	Box    boxmodel.Config
	Style  Style
}

// TextConfig describes a text run. Its content size comes from the scene's
// measurer.
type TextConfig struct {
	Name  string
	Text  string
	Font  measure.Style
	Box   boxmodel.Config
	Style Style
}

// ContainerConfig describes a container. Unset dimensions are auto. A nil
// Layout means [Freeform].
type ContainerConfig struct {
	Name          string
	Width, Height Length
	Box           boxmodel.Config
	Style         Style
	Layout        Arranger
}

// Rect creates an unattached rectangle.
func (s *Scene) Rect(cfg RectConfig) (ID, error) {
	name, err := s.claimName(cfg.Name, KindRect)
	if err != nil {
		return 0, err
	}
	for _, d := range []struct {
		axis string
		l    Length
	}{{"width", cfg.Width}, {"height", cfg.Height}} {
		switch {
		case !d.l.IsSet():
			return 0, errors.New(errors.ErrCodeMissingParam, "rect %q: %s is required", name, d.axis)
		case d.l.IsAuto():
			return 0, errors.New(errors.ErrCodeInvalidConfig, "rect %q: %s cannot be auto", name, d.axis)
		}
		if err := d.l.validate(fmt.Sprintf("rect %q %s", name, d.axis)); err != nil {
			return 0, err
		}
	}

	n := s.alloc(KindRect, name)
	n.box = cfg.Box.Resolve()
	n.width, n.height = cfg.Width, cfg.Height
	n.size = geom.Size{Width: cfg.Width.Value(), Height: cfg.Height.Value()}
	n.style = cfg.Style
	if err := s.settle(); err != nil {
		return 0, err
	}
	return n.id, nil
}

// Circle creates an unattached circle.
func (s *Scene) Circle(cfg CircleConfig) (ID, error) {
	name, err := s.claimName(cfg.Name, KindCircle)
	if err != nil {
		return 0, err
	}
	switch {
	case cfg.Radius == 0:
		return 0, errors.New(errors.ErrCodeMissingParam, "circle %q: radius is required", name)
	case cfg.Radius < 0 || math.IsNaN(cfg.Radius) || math.IsInf(cfg.Radius, 0):
		return 0, errors.New(errors.ErrCodeInvalidConfig, "circle %q: radius must be positive, got %g", name, cfg.Radius)
	}

	n := s.alloc(KindCircle, name)
	n.box = cfg.Box.Resolve()
	n.radius = cfg.Radius
	n.width, n.height = Px(2*cfg.Radius), Px(2*cfg.Radius)
	n.size = geom.Size{Width: 2 * cfg.Radius, Height: 2 * cfg.Radius}
	n.style = cfg.Style
	if err := s.settle(); err != nil {
		return 0, err
	}
	return n.id, nil
}

// Text creates an unattached text element. A failing measurer never fails the
// call; the text is sized by [measure.Estimate] until [Scene.Refresh] or the
// next settle obtains a real measurement.
func (s *Scene) Text(cfg TextConfig) (ID, error) {
	name, err := s.claimName(cfg.Name, KindText)
	if err != nil {
		return 0, err
	}
	if cfg.Font.FontSize < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "text %q: font size must be positive", name)
	}

	n := s.alloc(KindText, name)
	n.box = cfg.Box.Resolve()
	n.text = cfg.Text
	n.font = cfg.Font
	n.style = cfg.Style
	s.measureText(n)
	if err := s.settle(); err != nil {
		return 0, err
	}
	return n.id, nil
}

// Container creates an unattached container.
func (s *Scene) Container(cfg ContainerConfig) (ID, error) {
	name, err := s.claimName(cfg.Name, KindContainer)
	if err != nil {
		return 0, err
	}
	if err := cfg.Width.validate(fmt.Sprintf("container %q width", name)); err != nil {
		return 0, err
	}
	if err := cfg.Height.validate(fmt.Sprintf("container %q height", name)); err != nil {
		return 0, err
	}
	layout := cfg.Layout
	if layout == nil {
		layout = Freeform{}
	}
	if v, ok := layout.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "container %q", name)
		}
	}

	n := s.alloc(KindContainer, name)
	n.box = cfg.Box.Resolve()
	n.width, n.height = orAuto(cfg.Width), orAuto(cfg.Height)
	n.arranger = layout
	n.style = cfg.Style
	if cols, ok := layout.(Columns); ok {
		s.createLanes(n, cols)
	}
	if err := s.settle(); err != nil {
		return 0, err
	}
	return n.id, nil
}

func (s *Scene) claimName(name string, kind Kind) (string, error) {
	if name == "" {
		return fmt.Sprintf("%s#%d", kind, len(s.nodes)+1), nil
	}
	if _, dup := s.names[name]; dup {
		return "", errors.New(errors.ErrCodeInvalidConfig, "duplicate element name %q", name)
	}
	return name, nil
}
