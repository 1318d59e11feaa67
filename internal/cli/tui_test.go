package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFlattenScene(t *testing.T) {
	s := buildTestScene(t, detachedDiagram)
	rows := flattenScene(s)

	var got []string
	for _, r := range rows {
		got = append(got, s.Name(r.ID))
	}
	want := "artboard panel a b loose"
	if strings.Join(got, " ") != want {
		t.Errorf("flattenScene() = %v, want %s", got, want)
	}
	if rows[2].Depth != 2 {
		t.Errorf("depth of a = %d, want 2", rows[2].Depth)
	}
	if rows[4].Attached {
		t.Error("loose should not be attached")
	}
}

func TestElementListModelNavigation(t *testing.T) {
	s := buildTestScene(t, detachedDiagram)
	m := NewElementListModel(s, "test")
	m.Height = 2

	key := func(m ElementListModel, k string) ElementListModel {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		return next.(ElementListModel)
	}

	m = key(m, "down")
	m = key(m, "j")
	if m.Cursor != 2 || m.Offset != 1 {
		t.Errorf("after two downs: cursor=%d offset=%d, want 2, 1", m.Cursor, m.Offset)
	}
	m = key(m, "G")
	if m.Cursor != len(m.Rows)-1 {
		t.Errorf("G: cursor = %d, want %d", m.Cursor, len(m.Rows)-1)
	}
	m = key(m, "down")
	if m.Cursor != len(m.Rows)-1 {
		t.Error("cursor should stop at the last row")
	}
	m = key(m, "g")
	m = key(m, "up")
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("after g, up: cursor=%d offset=%d, want 0, 0", m.Cursor, m.Offset)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestElementListModelWindowSize(t *testing.T) {
	m := NewElementListModel(buildTestScene(t, testDiagram), "test")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if got := next.(ElementListModel).Height; got != 5 {
		t.Errorf("Height = %d, want minimum 5", got)
	}
}

func TestElementListModelView(t *testing.T) {
	m := NewElementListModel(buildTestScene(t, testDiagram), "flow")
	m.Cursor = 2 // a

	view := m.View()
	for _, want := range []string{"flow", "Element", "panel", "40x10 at (12, 12)", "margin", "content", "parent", "[3/4]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next.(ElementListModel).ShowDetail {
		t.Error("enter should toggle details off")
	}
}
