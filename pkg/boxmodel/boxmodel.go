// Package boxmodel resolves CSS-style margin, border and padding
// specifications into fully populated four-sided records.
//
// Resolution is total and never fails: an unset [Spec] resolves to zero on
// every side, [All] broadcasts a single value, and a partial spec defaults
// its missing sides to zero (they are never inherited from sibling sides).
// Negative values are clamped to zero so that resolved sides are always
// non-negative.
//
// String shorthands such as "20px 60px 30px 40px" are parsed by
// [ParseShorthand]; the scene graph itself only consumes resolved values.
package boxmodel

import (
	"fmt"

	"github.com/matzehuels/boxscene/pkg/geom"
)

// Sides holds one resolved value per side of a box.
type Sides struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns Sides with the same value on every side.
func Uniform(v float64) Sides {
	v = max(0, v)
	return Sides{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns Left + Right.
func (s Sides) Horizontal() float64 { return s.Left + s.Right }

// Vertical returns Top + Bottom.
func (s Sides) Vertical() float64 { return s.Top + s.Bottom }

// IsZero reports whether every side is zero.
func (s Sides) IsZero() bool { return s == Sides{} }

// Add returns the per-side sum of s and o.
func (s Sides) Add(o Sides) Sides {
	return Sides{Top: s.Top + o.Top, Right: s.Right + o.Right, Bottom: s.Bottom + o.Bottom, Left: s.Left + o.Left}
}

// Shrink insets r by s.
func (s Sides) Shrink(r geom.Rect) geom.Rect { return r.Inset(s.Top, s.Right, s.Bottom, s.Left) }

// Grow outsets r by s.
func (s Sides) Grow(r geom.Rect) geom.Rect { return r.Outset(s.Top, s.Right, s.Bottom, s.Left) }

func (s Sides) String() string {
	return fmt.Sprintf("%g %g %g %g", s.Top, s.Right, s.Bottom, s.Left)
}

// Spec is an unresolved four-sided value. Explicit sides take precedence
// over Uniform. The zero Spec resolves to all zeros.
type Spec struct {
	Uniform                  *float64
	Top, Right, Bottom, Left *float64
}

// All returns a Spec broadcasting v to all four sides.
func All(v float64) Spec { return Spec{Uniform: &v} }

// TRBL returns a Spec with each side set explicitly, in CSS order.
func TRBL(top, right, bottom, left float64) Spec {
	return Spec{Top: &top, Right: &right, Bottom: &bottom, Left: &left}
}

// Symmetric returns a Spec with vertical (top/bottom) and horizontal
// (left/right) values.
func Symmetric(vertical, horizontal float64) Spec {
	return TRBL(vertical, horizontal, vertical, horizontal)
}

// Value returns a pointer to v, for building partial specs:
//
//	boxmodel.Spec{Left: boxmodel.Value(12)}
func Value(v float64) *float64 { return &v }

// IsZero reports whether no side has been specified.
func (s Spec) IsZero() bool {
	return s.Uniform == nil && s.Top == nil && s.Right == nil && s.Bottom == nil && s.Left == nil
}

// Resolve expands the spec into Sides.
func (s Spec) Resolve() Sides {
	var out Sides
	if s.Uniform != nil {
		out = Uniform(*s.Uniform)
	}
	pick := func(dst *float64, v *float64) {
		if v != nil {
			*dst = max(0, *v)
		}
	}
	pick(&out.Top, s.Top)
	pick(&out.Right, s.Right)
	pick(&out.Bottom, s.Bottom)
	pick(&out.Left, s.Left)
	return out
}

// Config collects the unresolved specs of all three spacing layers.
type Config struct {
	Margin  Spec
	Border  Spec
	Padding Spec
}

// Resolve resolves every layer independently.
func (c Config) Resolve() Model {
	return Model{
		Margin:  c.Margin.Resolve(),
		Border:  c.Border.Resolve(),
		Padding: c.Padding.Resolve(),
	}
}

// Model is a resolved box model.
type Model struct {
	Margin  Sides
	Border  Sides
	Padding Sides
}

// Insets returns the combined border and padding thickness, i.e. the
// distance from the border box to the content box on each side.
func (m Model) Insets() Sides { return m.Border.Add(m.Padding) }
