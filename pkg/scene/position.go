package scene

import (
	"fmt"

	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/geom"
)

// Ref is a positioning target: an anchor on some element's box, or a literal
// point in the positioned element's parent content frame.
// The zero Ref is unset; as a position target it means the frame origin.
type Ref struct {
	target   ID
	anchor   geom.Anchor
	layer    Layer
	point    geom.Point
	anchored bool
}

// AnchorOf references an anchor on the content box of id.
// Use [Ref.On] to select another layer.
func AnchorOf(id ID, a geom.Anchor) Ref { return Ref{target: id, anchor: a, anchored: true} }

// At references a literal point in the parent content frame.
func At(x, y float64) Ref { return Ref{point: geom.Pt(x, y)} }

// On returns the reference moved to another box layer. It has no effect on
// literal references.
func (r Ref) On(layer Layer) Ref {
	r.layer = layer
	return r
}

// Target returns the referenced element, or 0 for literal references.
func (r Ref) Target() ID { return r.target }

// IsLiteral reports whether r is a literal point. Unset references count as
// the literal origin. A reference made with [AnchorOf] is never literal, even
// for an invalid ID.
func (r Ref) IsLiteral() bool { return !r.anchored }

// IsZero reports whether r is unset.
func (r Ref) IsZero() bool { return r == Ref{} }

// Anchor returns the referenced anchor and layer.
func (r Ref) Anchor() (geom.Anchor, Layer) { return r.anchor, r.layer }

// Point returns the literal point.
func (r Ref) Point() geom.Point { return r.point }

func (r Ref) describe(s *Scene) string {
	if r.IsLiteral() {
		return r.point.String()
	}
	return fmt.Sprintf("%s.%s@%s", s.label(r.target), r.anchor, r.layer)
}

// PositionSpec places the RelativeFrom anchor of an element's BoxReference
// box at RelativeTo, nudged by (X, Y). The zero spec centers the element's
// content box on the origin of its parent content frame.
type PositionSpec struct {
	RelativeFrom geom.Anchor
	BoxReference Layer
	RelativeTo   Ref
	X, Y         float64
}

// Position stores spec as the element's constraint and resolves it.
//
// The constraint is re-resolved every time the scene settles, so the element
// follows its target when either one moves, and is re-expressed in the new
// frame when the element changes parents. Children of proactive containers
// keep their constraint but the container's arrangement takes precedence.
//
// Position fails with [errors.ErrCodePositionCycle] when the target already
// depends on the element, either through its own constraints or through
// ownership (which covers targets inside the element's own subtree), and
// when the target's anchor moves with an auto size the element contributes
// to. A layout that still fails to converge fails the same way. On error the
// scene is left unchanged.
func (s *Scene) Position(id ID, spec PositionSpec) error {
	n, err := s.lookup(id)
	if err != nil {
		return err
	}
	if n.kind == KindArtboard || n.kind == KindLane {
		return errors.New(errors.ErrCodeInvalidTarget, "%s %q cannot be positioned", n.kind, n.name)
	}
	if !spec.RelativeTo.IsLiteral() {
		if _, err := s.lookup(spec.RelativeTo.target); err != nil {
			return errors.Wrap(errors.ErrCodeUnknownElement, err, "position %q", n.name)
		}
	}

	prev := n.constraint
	n.constraint = &spec
	if path := s.findCycle(n.id); path != nil {
		n.constraint = prev
		return errors.New(errors.ErrCodePositionCycle, "position %q relative to %s: %s",
			n.name, spec.RelativeTo.describe(s), s.describePath(path))
	}

	before := s.checkpoint()
	if s.constraintActive(n) {
		s.resolve(n)
	}
	return s.commit(before, func() { n.constraint = prev })
}

// ClearPosition drops the element's constraint. Its relative position is kept.
func (s *Scene) ClearPosition(id ID) error {
	n, err := s.lookup(id)
	if err != nil {
		return err
	}
	n.constraint = nil
	return nil
}

// resolve applies the element's constraint to its relative position. It
// reads only the current geometry of the two points involved, so resolving
// twice yields the same result.
func (s *Scene) resolve(n *node) {
	if n.constraint == nil {
		return
	}
	spec := *n.constraint
	frame := s.frameOrigin(n)

	var target geom.Point
	if spec.RelativeTo.IsLiteral() {
		target = frame.Add(spec.RelativeTo.point)
	} else {
		t := s.get(spec.RelativeTo.target)
		target = t.boxAt(s.borderOrigin(t), spec.RelativeTo.layer).At(spec.RelativeTo.anchor)
	}

	from := n.boxAt(geom.Point{}, spec.BoxReference).At(spec.RelativeFrom)
	origin := target.Sub(from).Add(geom.Pt(spec.X, spec.Y))
	n.rel = origin.Sub(frame)
}

// constraintActive reports whether the element's constraint drives its
// position. Proactive parents own their children's positions.
func (s *Scene) constraintActive(n *node) bool {
	if n.constraint == nil {
		return false
	}
	if p := s.get(n.parent); p != nil && p.arranger != nil && p.arranger.Proactive() {
		return false
	}
	return true
}
