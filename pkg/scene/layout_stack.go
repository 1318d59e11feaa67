package scene

import "github.com/matzehuels/boxscene/pkg/geom"

// Stack places children one after another along Axis, Spacing apart.
//
// On the cross axis each child is aligned against the container's content
// extent. When the container is auto-sized on the cross axis the extent is
// the largest child's, and every child is realigned whenever it changes.
// With RespectMargin, child margins add to the spacing and to the cross-axis
// extent.
type Stack struct {
	Axis          Axis
	Spacing       float64
	Align         geom.Align
	RespectMargin bool
}

// VStack returns a vertical stack.
func VStack(spacing float64, align geom.Align) Stack {
	return Stack{Axis: Vertical, Spacing: spacing, Align: align}
}

// HStack returns a horizontal stack.
func HStack(spacing float64, align geom.Align) Stack {
	return Stack{Axis: Horizontal, Spacing: spacing, Align: align}
}

func (Stack) Proactive() bool { return true }

func (st Stack) Arrange(a *Arrangement) {
	type span struct{ main, cross, lead, trail, crossLead float64 }
	spans := make([]span, len(a.Items))
	for i, it := range a.Items {
		m := it.Margin
		sp := span{main: it.Size.Height, cross: it.Size.Width}
		if st.Axis == Horizontal {
			sp.main, sp.cross = it.Size.Width, it.Size.Height
		}
		if st.RespectMargin {
			if st.Axis == Vertical {
				sp.lead, sp.trail, sp.crossLead = m.Top, m.Bottom, m.Left
				sp.cross += m.Horizontal()
			} else {
				sp.lead, sp.trail, sp.crossLead = m.Left, m.Right, m.Top
				sp.cross += m.Vertical()
			}
		}
		spans[i] = sp
	}

	avail := a.Content.Width
	autoCross := a.AutoWidth
	if st.Axis == Horizontal {
		avail, autoCross = a.Content.Height, a.AutoHeight
	}
	if autoCross {
		avail = 0
		for _, sp := range spans {
			avail = max(avail, sp.cross)
		}
	}

	cursor := 0.0
	for i := range a.Items {
		sp := spans[i]
		if i > 0 {
			cursor += st.Spacing
		}
		cursor += sp.lead
		cross := st.Align.Offset(avail, sp.cross) + sp.crossLead
		if st.Axis == Vertical {
			a.Items[i].Pos = geom.Pt(cross, cursor)
		} else {
			a.Items[i].Pos = geom.Pt(cursor, cross)
		}
		cursor += sp.main + sp.trail
	}
}
