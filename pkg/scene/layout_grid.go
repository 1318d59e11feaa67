package scene

import (
	"fmt"

	"github.com/matzehuels/boxscene/pkg/geom"
)

// Grid places children in cells filled row-major. Explicitly addressed
// children (see [Scene.AddElementAt]) keep their cell and the rest flow
// around them. A zero cell size uses the largest child on that axis.
// Children beyond Rows continue on extra rows.
//
// At least one of Columns and Rows must be positive; with Columns unset the
// column count is inferred from the child count.
type Grid struct {
	Columns, Rows         int
	CellWidth, CellHeight float64
	ColumnGap, RowGap     float64
	HAlign, VAlign        geom.Align
}

func (Grid) Proactive() bool { return true }

func (g Grid) Validate() error {
	if g.Columns <= 0 && g.Rows <= 0 {
		return fmt.Errorf("grid needs a positive column or row count")
	}
	if g.Columns < 0 || g.Rows < 0 || g.CellWidth < 0 || g.CellHeight < 0 || g.ColumnGap < 0 || g.RowGap < 0 {
		return fmt.Errorf("grid dimensions must not be negative")
	}
	return nil
}

func (g Grid) columns(n int) int {
	if g.Columns > 0 {
		return g.Columns
	}
	rows := max(g.Rows, 1)
	return max(1, (n+rows-1)/rows)
}

func (g Grid) Arrange(a *Arrangement) {
	cols := g.columns(len(a.Items))

	taken := make(map[Cell]bool)
	for _, it := range a.Items {
		if it.Cell != nil {
			taken[*it.Cell] = true
		}
	}
	next := 0
	cells := make([]Cell, len(a.Items))
	for i, it := range a.Items {
		if it.Cell != nil {
			cells[i] = *it.Cell
			continue
		}
		for taken[Cell{Row: next / cols, Col: next % cols}] {
			next++
		}
		cells[i] = Cell{Row: next / cols, Col: next % cols}
		taken[cells[i]] = true
		next++
	}

	cw, ch := g.CellWidth, g.CellHeight
	if cw == 0 || ch == 0 {
		var mw, mh float64
		for _, it := range a.Items {
			mw, mh = max(mw, it.Size.Width), max(mh, it.Size.Height)
		}
		if cw == 0 {
			cw = mw
		}
		if ch == 0 {
			ch = mh
		}
	}

	for i, it := range a.Items {
		c := cells[i]
		x := float64(c.Col)*(cw+g.ColumnGap) + g.HAlign.Offset(cw, it.Size.Width)
		y := float64(c.Row)*(ch+g.RowGap) + g.VAlign.Offset(ch, it.Size.Height)
		a.Items[i].Pos = geom.Pt(x, y)
		a.Items[i].Placed = &cells[i]
	}
}
