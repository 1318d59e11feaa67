package scene

import (
	"github.com/matzehuels/boxscene/pkg/boxmodel"
	"github.com/matzehuels/boxscene/pkg/geom"
)

// Arranger is a container layout strategy.
//
// Proactive arrangers own the positions of their children: Arrange is called
// on every settle and its output overwrites the children's relative
// positions. Passive arrangers are never asked to arrange; their children
// keep the positions they were given or resolve their own constraints.
type Arranger interface {
	Arrange(a *Arrangement)
	Proactive() bool
}

// Arrangement is the input and output of one Arrange call. Positions are
// border-box origins in the container's content frame.
type Arrangement struct {
	// Content is the container's current content size. On auto axes it is
	// the size found by the previous settle pass.
	Content               geom.Size
	AutoWidth, AutoHeight bool
	Items                 []Item
}

// Item is a child being arranged.
type Item struct {
	ID     ID
	Size   geom.Size // border-box size
	Margin boxmodel.Sides
	Cell   *Cell // explicit grid address, if any

	// Outputs.
	Pos    geom.Point
	Placed *Cell
}

// Cell addresses a grid cell.
type Cell struct {
	Row, Col int
}

// Manual performs no arrangement. It is the artboard's strategy.
type Manual struct{}

func (Manual) Arrange(*Arrangement) {}
func (Manual) Proactive() bool      { return false }

// Freeform lets children position themselves. The container only measures
// them for auto-sizing.
type Freeform struct{}

func (Freeform) Arrange(*Arrangement) {}
func (Freeform) Proactive() bool      { return false }

// Axis is the main axis of a stack.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// arrange runs a proactive arranger over the container's children.
func (s *Scene) arrange(n *node) {
	a := &Arrangement{
		Content:    n.size,
		AutoWidth:  n.width.IsAuto(),
		AutoHeight: n.height.IsAuto(),
		Items:      make([]Item, len(n.children)),
	}
	for i, id := range n.children {
		c := s.get(id)
		a.Items[i] = Item{ID: id, Size: c.borderSize(), Margin: c.box.Margin, Cell: c.cell}
	}
	n.arranger.Arrange(a)
	for _, it := range a.Items {
		c := s.get(it.ID)
		c.rel = it.Pos
		c.placed = it.Placed
	}
}
