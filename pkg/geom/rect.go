package geom

// Rect is an axis-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectAt builds a Rect from an origin and a size.
func RectAt(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{r.X, r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// MaxX returns the x coordinate of the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the y coordinate of the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// At returns the position of the named anchor.
func (r Rect) At(a Anchor) Point {
	fx, fy := a.fractions()
	return Point{r.X + r.Width*fx, r.Y + r.Height*fy}
}

func (r Rect) TopLeft() Point      { return r.At(TopLeft) }
func (r Rect) TopCenter() Point    { return r.At(TopCenter) }
func (r Rect) TopRight() Point     { return r.At(TopRight) }
func (r Rect) LeftCenter() Point   { return r.At(LeftCenter) }
func (r Rect) Center() Point       { return r.At(Center) }
func (r Rect) RightCenter() Point  { return r.At(RightCenter) }
func (r Rect) BottomLeft() Point   { return r.At(BottomLeft) }
func (r Rect) BottomCenter() Point { return r.At(BottomCenter) }
func (r Rect) BottomRight() Point  { return r.At(BottomRight) }

// Top is an alias for TopCenter.
func (r Rect) Top() Point { return r.TopCenter() }

// Bottom is an alias for BottomCenter.
func (r Rect) Bottom() Point { return r.BottomCenter() }

// Left is an alias for LeftCenter.
func (r Rect) Left() Point { return r.LeftCenter() }

// Right is an alias for RightCenter.
func (r Rect) Right() Point { return r.RightCenter() }

// Inset shrinks the rectangle by the given per-side amounts.
// The resulting width and height never drop below zero.
func (r Rect) Inset(top, right, bottom, left float64) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  max(0, r.Width-left-right),
		Height: max(0, r.Height-top-bottom),
	}
}

// Outset grows the rectangle by the given per-side amounts.
func (r Rect) Outset(top, right, bottom, left float64) Rect {
	return Rect{
		X:      r.X - left,
		Y:      r.Y - top,
		Width:  r.Width + left + right,
		Height: r.Height + top + bottom,
	}
}

// Translate returns the rectangle moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, Width: r.Width, Height: r.Height}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	minX, minY := min(r.X, o.X), min(r.Y, o.Y)
	maxX, maxY := max(r.MaxX(), o.MaxX()), max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// CircleBounds returns the bounding square of a circle.
func CircleBounds(center Point, radius float64) Rect {
	return Rect{X: center.X - radius, Y: center.Y - radius, Width: 2 * radius, Height: 2 * radius}
}
