package scene

import (
	"fmt"

	"github.com/matzehuels/boxscene/pkg/geom"
)

// Columns divides a container into Count vertical lanes separated by Gutter.
//
// Each lane is a manual sub-container (kind [KindLane]) reached through
// [Scene.Column]; the columns container itself accepts no direct children.
// With a fixed container width, lanes share it equally after gutters. With
// an auto width, lanes are LaneWidth wide, or auto when LaneWidth is zero.
// Lanes are always auto-height.
type Columns struct {
	Count     int
	Gutter    float64
	LaneWidth float64
}

func (Columns) Proactive() bool { return true }

func (c Columns) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("columns needs a positive count, got %d", c.Count)
	}
	if c.Gutter < 0 || c.LaneWidth < 0 {
		return fmt.Errorf("columns gutter and lane width must not be negative")
	}
	return nil
}

func (c Columns) Arrange(a *Arrangement) {
	x := 0.0
	for i, it := range a.Items {
		a.Items[i].Pos = geom.Pt(x, 0)
		x += it.Size.Width + c.Gutter
	}
}

func (c Columns) laneWidth(container Length) Length {
	switch {
	case !container.IsAuto():
		w := (container.Value() - c.Gutter*float64(c.Count-1)) / float64(c.Count)
		return Px(max(0, w))
	case c.LaneWidth > 0:
		return Px(c.LaneWidth)
	default:
		return Auto()
	}
}

func (s *Scene) createLanes(n *node, c Columns) {
	width := c.laneWidth(n.width)
	for i := range c.Count {
		lane := s.alloc(KindLane, fmt.Sprintf("%s/%d", n.name, i))
		lane.width, lane.height = width, Auto()
		lane.size.Width = width.Value()
		lane.arranger = Manual{}
		lane.parent = n.id
		n.children = append(n.children, lane.id)
		n.lanes = append(n.lanes, lane.id)
	}
}
