package diagram

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/geom"
	"github.com/matzehuels/boxscene/pkg/scene"
)

func build(t *testing.T, src string) (*scene.Scene, *Document) {
	t.Helper()
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	s, err := Build(doc)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return s, doc
}

func lookup(t *testing.T, s *scene.Scene, name string) scene.ID {
	t.Helper()
	id, ok := s.Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) not found", name)
	}
	return id
}

func TestBuildAutosizeExample(t *testing.T) {
	doc, err := Load(filepath.Join("..", "..", "examples", "autosize.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	s, err := Build(doc)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	b := s.BorderBox(lookup(t, s, "group"))
	if math.Abs(b.Width-500) > 1e-6 || math.Abs(b.Height-400) > 1e-6 {
		t.Errorf("group border box = %vx%v, want 500x400", b.Width, b.Height)
	}
	if doc.Title != "Auto-sized container" {
		t.Errorf("Title = %q", doc.Title)
	}
}

func TestBuildAllExamples(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.toml"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no example diagrams found: %v", err)
	}
	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			doc, err := Load(f)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if _, err := Build(doc); err != nil {
				t.Fatalf("Build() error: %v", err)
			}
		})
	}
}

func TestBuildValues(t *testing.T) {
	s, _ := build(t, `
[artboard]
width = "300px"
height = 200
padding = { top = 5, left = 7 }

[[element]]
id = "box"
kind = "rect"
width = 40
height = 20.5
margin = "1 2 3 4"
border = 2

[[element]]
id = "dot"
kind = "circle"
radius = 5
detached = true
[element.position]
to = "box.bottomRight@margin"
`)
	box := lookup(t, s, "box")
	m := s.BoxModel(box)
	if m.Margin.Top != 1 || m.Margin.Left != 4 || m.Border.Right != 2 {
		t.Errorf("BoxModel() = %+v", m)
	}
	if got := s.ContentBox(s.Root()); got.Width != 300 || got.Height != 200 {
		t.Errorf("artboard content = %+v, want 300x200", got)
	}
	assertPoint(t, "box origin", s.BorderBox(box).TopLeft(), geom.Pt(7, 5))

	dot := lookup(t, s, "dot")
	if s.Attached(dot) {
		t.Errorf("detached element is attached")
	}
	assertPoint(t, "dot center", s.Anchor(dot, geom.Center), s.MarginBox(box).BottomRight())
}

func TestBuildContainers(t *testing.T) {
	s, _ := build(t, `
[[element]]
id = "cols"
kind = "container"
layout = "columns"
width = 210
columns = 2
gutter = 10

[[element]]
id = "grid"
kind = "container"
layout = "grid"
columns = 2
parent = "cols"
column = 1

[[element]]
id = "a"
kind = "rect"
width = 10
height = 10
parent = "grid"
cell = [0, 1]

[[element]]
id = "b"
kind = "rect"
width = 10
height = 10
parent = "grid"
`)
	grid := lookup(t, s, "grid")
	lane, _ := s.Column(lookup(t, s, "cols"), 1)
	if p, _ := s.Parent(grid); p != lane {
		t.Errorf("grid parent = %v, want lane %v", p, lane)
	}
	if id, ok := s.Cell(grid, 0, 1); !ok || id != lookup(t, s, "a") {
		t.Errorf("Cell(0, 1) = %v, %v, want a", id, ok)
	}
	if id, ok := s.Cell(grid, 0, 0); !ok || id != lookup(t, s, "b") {
		t.Errorf("Cell(0, 0) = %v, %v, want b", id, ok)
	}
	assertPoint(t, "grid origin", s.BorderBox(grid).TopLeft(), geom.Pt(110, 0))
}

func TestBuildTransforms(t *testing.T) {
	s, _ := build(t, `
[[element]]
id = "r"
kind = "rect"
width = 10
height = 10
translate = [3, 4]
z = -2
[element.rotate]
deg = 30
about = [0, 0]
`)
	r := lookup(t, s, "r")
	assertPoint(t, "Translation()", s.Translation(r), geom.Pt(3, 4))
	if z, ok := s.ZIndex(r); !ok || z != -2 {
		t.Errorf("ZIndex() = %v, %v, want -2", z, ok)
	}
	if _, deg, ok := s.RotationPivot(r); !ok || deg != 30 {
		t.Errorf("RotationPivot() deg = %v, ok = %v", deg, ok)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want errors.Code
	}{
		{"unknown key", `
[[element]]
id = "a"
kind = "rect"
widht = 3
`, errors.ErrCodeInvalidDiagram},
		{"bad syntax", `[[element]`, errors.ErrCodeInvalidDiagram},
		{"bad shorthand", `
[[element]]
id = "a"
kind = "rect"
padding = "1 2 3 4 5"
`, errors.ErrCodeInvalidDiagram},
		{"missing kind", `
[[element]]
id = "a"
`, errors.ErrCodeMissingParam},
		{"unknown kind", `
[[element]]
id = "a"
kind = "polygon"
`, errors.ErrCodeInvalidDiagram},
		{"bad id", `
[[element]]
id = "has space"
kind = "rect"
`, errors.ErrCodeInvalidDiagram},
		{"duplicate id", `
[[element]]
id = "a"
kind = "rect"
width = 1
height = 1
[[element]]
id = "a"
kind = "rect"
width = 1
height = 1
`, errors.ErrCodeInvalidDiagram},
		{"missing width", `
[[element]]
id = "a"
kind = "rect"
height = 1
`, errors.ErrCodeMissingParam},
		{"unknown parent", `
[[element]]
id = "a"
kind = "rect"
width = 1
height = 1
parent = "nope"
`, errors.ErrCodeUnknownElement},
		{"unknown target", `
[[element]]
id = "a"
kind = "rect"
width = 1
height = 1
[element.position]
to = "ghost.center"
`, errors.ErrCodeUnknownElement},
		{"position cycle", `
[[element]]
id = "a"
kind = "rect"
width = 1
height = 1
[element.position]
to = "b"
[[element]]
id = "b"
kind = "rect"
width = 1
height = 1
[element.position]
to = "a.topLeft"
`, errors.ErrCodePositionCycle},
		{"follows the auto artboard it grows", `
[[element]]
id = "a"
kind = "rect"
width = 10
height = 10
[element.position]
from = "topLeft"
to = "artboard.bottomRight"
`, errors.ErrCodePositionCycle},
		{"parent is not a container", `
[[element]]
id = "a"
kind = "rect"
width = 1
height = 1
[[element]]
id = "b"
kind = "rect"
width = 1
height = 1
parent = "a"
`, errors.ErrCodeInvalidTarget},
		{"bad color", `
[[element]]
id = "a"
kind = "rect"
width = 1
height = 1
fill = "not a color!"
`, errors.ErrCodeInvalidDiagram},
		{"bad layout", `
[[element]]
id = "a"
kind = "container"
layout = "spiral"
`, errors.ErrCodeInvalidDiagram},
		{"missing column", `
[[element]]
id = "c"
kind = "container"
layout = "columns"
columns = 2
[[element]]
id = "a"
kind = "rect"
width = 1
height = 1
parent = "c"
column = 5
`, errors.ErrCodeInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src))
			if err == nil {
				_, err = Build(doc)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestValidateElementLimit(t *testing.T) {
	doc := &Document{Elements: make([]Element, MaxElements+1)}
	if err := doc.Validate(); !errors.Is(err, errors.ErrCodeInvalidDiagram) {
		t.Errorf("Validate() error = %v, want %s", err, errors.ErrCodeInvalidDiagram)
	}
}

func TestBuildContextCancelled(t *testing.T) {
	doc, err := Parse([]byte(`
[[element]]
id = "a"
kind = "rect"
width = 10
height = 10
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BuildContext(ctx, doc); err != context.Canceled {
		t.Errorf("BuildContext() error = %v, want context.Canceled", err)
	}
}

func TestCycleErrorNamesElements(t *testing.T) {
	doc, _ := Parse([]byte(`
[[element]]
id = "left"
kind = "rect"
width = 1
height = 1
[element.position]
to = "right"
[[element]]
id = "right"
kind = "rect"
width = 1
height = 1
[element.position]
to = "left"
`))
	_, err := Build(doc)
	if err == nil {
		t.Fatal("Build() succeeded, want cycle error")
	}
	msg := errors.UserMessage(err)
	if !strings.Contains(msg, `"right"`) || !strings.Contains(msg, "right -> left -> right") {
		t.Errorf("UserMessage() = %q, want element and path", msg)
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"box", "box.center@content", false},
		{"box.topRight", "box.topRight@content", false},
		{"box.bottom-left@border", "box.bottomLeft@border", false},
		{"box.right@margin-box", "box.rightCenter@margin", false},
		{".center", "", true},
		{"box.nowhere", "", true},
		{"box.center@outline", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTarget(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got.String() != tt.want {
				t.Errorf("ParseTarget(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	_, doc := build(t, `
[[element]]
id = "c"
kind = "container"
[[element]]
id = "t"
kind = "text"
text = "hi"
parent = "c"
`)
	if got, want := doc.Summary(), "2 elements (1 containers, 0 shapes, 1 texts)"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func assertPoint(t *testing.T, what string, got, want geom.Point) {
	t.Helper()
	if !got.ApproxEqual(want, 1e-6) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}
