package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/boxscene/pkg/geom"
	"github.com/matzehuels/boxscene/pkg/scene"
)

const detailKeyWidth = 11

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	detailKeyStyle = lipgloss.NewStyle().Foreground(colorGray).Width(detailKeyWidth)
	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// ElementListModel - Interactive element browser
// =============================================================================

// elementRow is one line of the element list.
type elementRow struct {
	ID       scene.ID
	Depth    int
	Attached bool
}

// flattenScene lists the ownership tree in render order, followed by
// detached elements.
func flattenScene(s *scene.Scene) []elementRow {
	var rows []elementRow
	s.Walk(func(id scene.ID, depth int) bool {
		rows = append(rows, elementRow{ID: id, Depth: depth, Attached: true})
		return true
	})
	for _, id := range s.Elements() {
		if !s.Attached(id) {
			rows = append(rows, elementRow{ID: id})
		}
	}
	return rows
}

// ElementListModel is the bubbletea model for browsing a settled scene.
type ElementListModel struct {
	Scene      *scene.Scene
	Title      string
	Rows       []elementRow
	Cursor     int
	Height     int
	Offset     int
	ShowDetail bool
}

// NewElementListModel creates a new element list model.
func NewElementListModel(s *scene.Scene, title string) ElementListModel {
	return ElementListModel{
		Scene:      s,
		Title:      title,
		Rows:       flattenScene(s),
		Height:     15,
		ShowDetail: true,
	}
}

func (m ElementListModel) Init() tea.Cmd {
	return nil
}

func (m ElementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = len(m.Rows) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		case "enter", " ":
			m.ShowDetail = !m.ShowDetail
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 16
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ElementListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name := strings.Repeat("  ", r.Depth) + m.Scene.Name(r.ID)
		z := ""
		if v, ok := m.Scene.ZIndex(r.ID); ok {
			z = fmt.Sprint(v)
		}
		rows = append(rows, []string{cursor, name, m.Scene.Kind(r.ID).String(), fmtRect(m.Scene.BorderBox(r.ID)), z})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Element", "Kind", "Border box", "Z").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if !m.Rows[idx].Attached {
				base = base.Foreground(colorDim)
			} else if col == 2 || col == 4 {
				base = base.Foreground(colorGray)
			}
			if idx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if m.ShowDetail && len(m.Rows) > 0 {
		b.WriteString(detailBoxStyle.Render(m.detail(m.Rows[m.Cursor])))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// detail lists the four boxes and the placement of one element.
func (m ElementListModel) detail(r elementRow) string {
	s := m.Scene
	id := r.ID
	var lines []string
	kv := func(k, v string) {
		lines = append(lines, detailKeyStyle.Render(k)+" "+StyleValue.Render(v))
	}

	lines = append(lines, boxLines(s, id, detailKeyWidth)...)

	if p, ok := s.Parent(id); ok {
		kv("parent", s.Name(p))
	} else if !r.Attached {
		kv("parent", "detached")
	}
	if spec, ok := s.Constraint(id); ok {
		to := spec.RelativeTo.Point().String()
		if !spec.RelativeTo.IsLiteral() {
			a, layer := spec.RelativeTo.Anchor()
			to = fmt.Sprintf("%s.%s@%s", s.Name(spec.RelativeTo.Target()), a, layer)
		}
		kv("position", fmt.Sprintf("%s@%s -> %s + (%g, %g)", spec.RelativeFrom, spec.BoxReference, to, spec.X, spec.Y))
	}
	if d := s.Translation(id); d != (geom.Point{}) {
		kv("translate", d.String())
	}
	if pivot, deg, ok := s.RotationPivot(id); ok {
		kv("rotate", fmt.Sprintf("%g° about %s", deg, pivot))
	}
	if text, _ := s.TextContent(id); s.Kind(id) == scene.KindText {
		kv("text", fmt.Sprintf("%q", text))
		if s.Pending(id) {
			lines = append(lines, StyleWarning.Render("measured with estimates"))
		}
	}
	return strings.Join(lines, "\n")
}
