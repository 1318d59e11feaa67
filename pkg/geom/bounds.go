package geom

// Bounds accumulates the union of rectangles. The zero value holds no
// contribution; Rect on an empty Bounds returns the zero Rect rather than an
// inverted infinite box.
type Bounds struct {
	rect Rect
	ok   bool
}

// Add extends the bounds to include r.
func (b *Bounds) Add(r Rect) {
	if !b.ok {
		b.rect, b.ok = r, true
		return
	}
	b.rect = b.rect.Union(r)
}

// Empty reports whether nothing has been added yet.
func (b Bounds) Empty() bool { return !b.ok }

// Rect returns the accumulated union, or the zero Rect when empty.
func (b Bounds) Rect() Rect {
	if !b.ok {
		return Rect{}
	}
	return b.rect
}

// Extent returns the size of the box spanning from the origin to the far
// edges of the union. Contributions left of or above the origin overflow and
// do not grow the extent. An empty Bounds has zero extent.
func (b Bounds) Extent() Size {
	if !b.ok {
		return Size{}
	}
	return Size{Width: max(0, b.rect.MaxX()), Height: max(0, b.rect.MaxY())}
}
