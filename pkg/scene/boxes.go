package scene

import "github.com/matzehuels/boxscene/pkg/geom"

// MarginBox returns the absolute margin box. Unknown IDs yield the zero Rect.
func (s *Scene) MarginBox(id ID) geom.Rect { return s.Box(id, MarginBox) }

// BorderBox returns the absolute border box.
func (s *Scene) BorderBox(id ID) geom.Rect { return s.Box(id, BorderBox) }

// PaddingBox returns the absolute padding box.
func (s *Scene) PaddingBox(id ID) geom.Rect { return s.Box(id, PaddingBox) }

// ContentBox returns the absolute content box.
func (s *Scene) ContentBox(id ID) geom.Rect { return s.Box(id, ContentBox) }

// Box returns the absolute box of the given layer.
func (s *Scene) Box(id ID, layer Layer) geom.Rect {
	n := s.get(id)
	if n == nil {
		return geom.Rect{}
	}
	return n.boxAt(s.borderOrigin(n), layer)
}

// Anchor returns an anchor of the content box.
func (s *Scene) Anchor(id ID, a geom.Anchor) geom.Point {
	return s.ContentBox(id).At(a)
}

// boxAt lays out the element's boxes around a border-box origin.
func (n *node) boxAt(origin geom.Point, layer Layer) geom.Rect {
	border := geom.RectAt(origin, n.borderSize())
	switch layer {
	case MarginBox:
		return n.box.Margin.Grow(border)
	case BorderBox:
		return border
	case PaddingBox:
		return n.box.Border.Shrink(border)
	default:
		return n.box.Padding.Shrink(n.box.Border.Shrink(border))
	}
}

func (n *node) borderSize() geom.Size {
	in := n.box.Insets()
	return geom.Size{
		Width:  n.size.Width + in.Horizontal(),
		Height: n.size.Height + in.Vertical(),
	}
}

// contentOffset is the distance from the border-box origin to the content-box
// origin.
func (n *node) contentOffset() geom.Point {
	in := n.box.Insets()
	return geom.Point{X: in.Left, Y: in.Top}
}

// frameOrigin returns the absolute origin of the frame the element's relative
// position is expressed in.
func (s *Scene) frameOrigin(n *node) geom.Point {
	if n.id == s.root {
		return geom.Point{}
	}
	if n.parent != 0 {
		p := s.get(n.parent)
		return s.borderOrigin(p).Add(p.contentOffset())
	}
	return s.get(s.root).contentOffset()
}

func (s *Scene) borderOrigin(n *node) geom.Point {
	return s.frameOrigin(n).Add(n.rel).Add(n.offset)
}

// extent is the area an element occupies for auto-sizing, in absolute
// coordinates. Circles contribute their geometric bounds.
func (s *Scene) extent(n *node) geom.Rect {
	if n.kind == KindCircle {
		c := n.boxAt(s.borderOrigin(n), ContentBox).Center()
		return geom.CircleBounds(c, n.radius)
	}
	return geom.RectAt(s.borderOrigin(n), n.borderSize())
}
