package scene

import (
	"cmp"
	"slices"
)

// RenderOrderKey orders siblings for rendering: Z ascending, then insertion
// ascending. Elements without an explicit z-index have Z 0.
type RenderOrderKey struct {
	Z         int
	Explicit  bool
	Insertion uint32
}

// Compare returns -1, 0 or +1 as k sorts before, with or after o.
func (k RenderOrderKey) Compare(o RenderOrderKey) int {
	if c := cmp.Compare(k.Z, o.Z); c != 0 {
		return c
	}
	return cmp.Compare(k.Insertion, o.Insertion)
}

// SetZIndex sets an explicit z-index. Z-indices order siblings only; a child
// never renders outside its parent's slot.
func (s *Scene) SetZIndex(id ID, z int) error {
	n, err := s.lookup(id)
	if err != nil {
		return err
	}
	n.z = &z
	return nil
}

// ClearZIndex removes an explicit z-index.
func (s *Scene) ClearZIndex(id ID) error {
	n, err := s.lookup(id)
	if err != nil {
		return err
	}
	n.z = nil
	return nil
}

// ZIndex returns the explicit z-index, if any.
func (s *Scene) ZIndex(id ID) (int, bool) {
	if n := s.get(id); n != nil && n.z != nil {
		return *n.z, true
	}
	return 0, false
}

// OrderKey returns the element's render order key.
func (s *Scene) OrderKey(id ID) RenderOrderKey {
	n := s.get(id)
	if n == nil {
		return RenderOrderKey{}
	}
	k := RenderOrderKey{Insertion: n.seq}
	if n.z != nil {
		k.Z, k.Explicit = *n.z, true
	}
	return k
}

// RenderOrder returns the container's children sorted by render order.
func (s *Scene) RenderOrder(container ID) []ID {
	ids := s.Children(container)
	slices.SortStableFunc(ids, func(a, b ID) int {
		return s.OrderKey(a).Compare(s.OrderKey(b))
	})
	return ids
}

// Walk visits the attached tree depth-first in render order, starting at the
// artboard with depth 0. Returning false from fn skips the element's
// children.
func (s *Scene) Walk(fn func(id ID, depth int) bool) {
	s.walk(s.root, 0, fn)
}

func (s *Scene) walk(id ID, depth int, fn func(ID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, c := range s.RenderOrder(id) {
		s.walk(c, depth+1, fn)
	}
}
