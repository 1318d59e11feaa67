package scene

import (
	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/geom"
)

// TranslateSpec moves an element Distance units along a direction.
// Along is normalized; a zero vector moves nothing.
type TranslateSpec struct {
	Along    geom.Vector
	Distance float64
}

// Translate shifts the element on top of its resolved position. Offsets
// accumulate across calls and survive re-arrangement and constraint
// resolution. Descendants move with the element.
func (s *Scene) Translate(id ID, spec TranslateSpec) error {
	n, err := s.lookup(id)
	if err != nil {
		return err
	}
	if n.kind == KindArtboard || n.kind == KindLane {
		return errInvalidTarget(n, "translate")
	}
	u := spec.Along.Unit()
	before, prev := s.checkpoint(), n.offset
	n.offset = n.offset.Add(geom.Pt(u.X*spec.Distance, u.Y*spec.Distance))
	return s.commit(before, func() { n.offset = prev })
}

// Translation returns the accumulated translation offset.
func (s *Scene) Translation(id ID) geom.Point {
	if n := s.get(id); n != nil {
		return n.offset
	}
	return geom.Point{}
}

// RotateSpec rotates an element by Deg degrees clockwise about RelativeTo.
// An unset RelativeTo rotates about the element's own border-box center.
type RotateSpec struct {
	RelativeTo Ref
	Deg        float64
}

// Rotate records a rotation applied at render time. Rotation never affects
// layout or auto-sizing. A later call replaces the previous rotation; zero
// degrees clears it.
func (s *Scene) Rotate(id ID, spec RotateSpec) error {
	n, err := s.lookup(id)
	if err != nil {
		return err
	}
	if n.kind == KindArtboard {
		return errInvalidTarget(n, "rotate")
	}
	if !spec.RelativeTo.IsLiteral() {
		if _, err := s.lookup(spec.RelativeTo.target); err != nil {
			return errors.Wrap(errors.ErrCodeUnknownElement, err, "rotate %q", n.name)
		}
	}
	if spec.Deg == 0 {
		n.rotation = nil
		return nil
	}
	n.rotation = &spec
	return nil
}

// RotationPivot returns the element's rotation in degrees and its absolute
// pivot. ok is false when the element is not rotated.
func (s *Scene) RotationPivot(id ID) (pivot geom.Point, deg float64, ok bool) {
	n := s.get(id)
	if n == nil || n.rotation == nil {
		return geom.Point{}, 0, false
	}
	r := n.rotation.RelativeTo
	switch {
	case r.IsZero():
		pivot = s.BorderBox(id).Center()
	case r.IsLiteral():
		pivot = s.frameOrigin(n).Add(r.point)
	default:
		pivot = s.Box(r.target, r.layer).At(r.anchor)
	}
	return pivot, n.rotation.Deg, true
}

func errInvalidTarget(n *node, action string) error {
	return errors.New(errors.ErrCodeInvalidTarget, "cannot %s %s %q", action, n.kind, n.name)
}
