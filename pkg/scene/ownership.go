package scene

import (
	"slices"

	"github.com/matzehuels/boxscene/pkg/errors"
)

// AddElement makes container the sole owner of child.
//
// Any previous owner loses the child; its relative position is kept unless
// the new container arranges its children. The child receives a fresh
// insertion sequence, which orders it after its new siblings for stacking
// and z-index tie-breaking. Re-adding a child to its current container moves
// it to the end.
//
// Columns containers manage their own lanes; add elements to a lane returned
// by [Scene.Column] instead.
func (s *Scene) AddElement(container, child ID) error {
	return s.add(container, child, nil)
}

// AddElementAt adds child to a grid container at an explicit cell.
// Auto-placed children flow around explicitly addressed cells.
func (s *Scene) AddElementAt(grid, child ID, row, col int) error {
	g, err := s.lookup(grid)
	if err != nil {
		return err
	}
	spec, ok := g.arranger.(Grid)
	if !ok {
		return errors.New(errors.ErrCodeInvalidTarget, "%q is not a grid container", g.name)
	}
	if row < 0 || col < 0 || (spec.Columns > 0 && col >= spec.Columns) || (spec.Rows > 0 && row >= spec.Rows) {
		return errors.New(errors.ErrCodeInvalidTarget, "cell (%d, %d) is outside grid %q", row, col, g.name)
	}
	for _, c := range g.children {
		if cn := s.get(c); c != child && cn.cell != nil && *cn.cell == (Cell{Row: row, Col: col}) {
			return errors.New(errors.ErrCodeInvalidTarget, "cell (%d, %d) of grid %q is taken by %q", row, col, g.name, cn.name)
		}
	}
	return s.add(grid, child, &Cell{Row: row, Col: col})
}

func (s *Scene) add(container, child ID, cell *Cell) error {
	p, err := s.lookup(container)
	if err != nil {
		return err
	}
	c, err := s.lookup(child)
	if err != nil {
		return err
	}

	switch {
	case !p.kind.IsContainer():
		return errors.New(errors.ErrCodeInvalidTarget, "%s %q cannot own elements", p.kind, p.name)
	case c.kind == KindArtboard:
		return errors.New(errors.ErrCodeInvalidTarget, "the artboard cannot be added to %q", p.name)
	case c.kind == KindLane:
		return errors.New(errors.ErrCodeInvalidTarget, "lane %q belongs to its columns container", c.name)
	}
	if _, ok := p.arranger.(Columns); ok {
		return errors.New(errors.ErrCodeInvalidTarget, "columns container %q only accepts elements through its lanes", p.name)
	}
	if s.ownedBy(p, c) {
		return errors.New(errors.ErrCodeOwnershipCycle, "adding %q to %q would make it its own ancestor", c.name, p.name)
	}

	before, prev := s.checkpoint(), s.attachmentOf(c)
	s.detach(c)
	p.children = append(p.children, c.id)
	c.parent = p.id
	c.cell = cell
	s.seq++
	c.seq = s.seq

	// Every dependency the move adds starts or ends inside c's subtree.
	moved := []ID{c.id}
	s.eachDescendant(c, func(d *node) { moved = append(moved, d.id) })
	if path := s.findCycle(moved...); path != nil {
		s.reattach(c, prev)
		return errors.New(errors.ErrCodePositionCycle, "adding %q to %q: %s", c.name, p.name, s.describePath(path))
	}
	return s.commit(before, func() { s.reattach(c, prev) })
}

// attachment records where an element sits in its owner.
type attachment struct {
	parent       ID
	index        int
	cell, placed *Cell
	seq          uint32
}

func (s *Scene) attachmentOf(n *node) attachment {
	a := attachment{parent: n.parent, index: -1, cell: n.cell, placed: n.placed, seq: n.seq}
	if p := s.get(n.parent); p != nil {
		a.index = slices.Index(p.children, n.id)
	}
	return a
}

// reattach puts n back where a recorded it.
func (s *Scene) reattach(n *node, a attachment) {
	s.detach(n)
	if p := s.get(a.parent); p != nil {
		p.children = slices.Insert(p.children, a.index, n.id)
	}
	n.parent, n.cell, n.placed, n.seq = a.parent, a.cell, a.placed, a.seq
}

// Detach removes the element from its owner. It stays in the scene,
// unattached and unrendered, with its relative position unchanged.
func (s *Scene) Detach(id ID) error {
	n, err := s.lookup(id)
	if err != nil {
		return err
	}
	if n.kind == KindLane {
		return errors.New(errors.ErrCodeInvalidTarget, "lane %q cannot be detached", n.name)
	}
	before, prev := s.checkpoint(), s.attachmentOf(n)
	s.detach(n)
	return s.commit(before, func() { s.reattach(n, prev) })
}

func (s *Scene) detach(n *node) {
	if p := s.get(n.parent); p != nil {
		p.children = slices.DeleteFunc(p.children, func(c ID) bool { return c == n.id })
	}
	n.parent = 0
	n.cell, n.placed = nil, nil
}

// ownedBy reports whether n is c or one of c's descendants.
func (s *Scene) ownedBy(n, c *node) bool {
	for cur := n; cur != nil; cur = s.get(cur.parent) {
		if cur.id == c.id {
			return true
		}
	}
	return false
}

// Cell returns the child occupying a grid cell.
func (s *Scene) Cell(grid ID, row, col int) (ID, bool) {
	g := s.get(grid)
	if g == nil {
		return 0, false
	}
	want := Cell{Row: row, Col: col}
	for _, c := range g.children {
		if cn := s.get(c); cn.placed != nil && *cn.placed == want {
			return c, true
		}
	}
	return 0, false
}

// CellOf returns the grid cell an element was placed in.
func (s *Scene) CellOf(id ID) (Cell, bool) {
	if n := s.get(id); n != nil && n.placed != nil {
		return *n.placed, true
	}
	return Cell{}, false
}

// Column returns the i-th lane of a columns container.
func (s *Scene) Column(columns ID, i int) (ID, bool) {
	n := s.get(columns)
	if n == nil || i < 0 || i >= len(n.lanes) {
		return 0, false
	}
	return n.lanes[i], true
}
