package scene

import "github.com/matzehuels/boxscene/pkg/geom"

// autosize recomputes the content size of an auto-sized container from every
// descendant's extent, in the container's own content frame. The content box
// stays anchored at its origin: descendants overflowing to the left or top do
// not grow it. A container without descendants has zero size on auto axes.
func (s *Scene) autosize(n *node) {
	if !n.kind.IsContainer() {
		return
	}
	if !n.width.IsAuto() {
		n.size.Width = n.width.Value()
	}
	if !n.height.IsAuto() {
		n.size.Height = n.height.Value()
	}
	if !n.width.IsAuto() && !n.height.IsAuto() {
		return
	}

	origin := s.borderOrigin(n).Add(n.contentOffset())
	var b geom.Bounds
	s.eachDescendant(n, func(d *node) {
		b.Add(s.extent(d).Translate(origin.Scale(-1)))
	})
	ext := b.Extent()
	if n.width.IsAuto() {
		n.size.Width = ext.Width
	}
	if n.height.IsAuto() {
		n.size.Height = ext.Height
	}
}

func (s *Scene) eachDescendant(n *node, fn func(*node)) {
	for _, id := range n.children {
		c := s.get(id)
		fn(c)
		s.eachDescendant(c, fn)
	}
}
