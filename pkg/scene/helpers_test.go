package scene

import (
	"math"
	"testing"

	"github.com/matzehuels/boxscene/pkg/geom"
)

const tol = 1e-6

func newScene(t *testing.T, cfg ArtboardConfig, opts ...Option) *Scene {
	t.Helper()
	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func mustRect(t *testing.T, s *Scene, name string, w, h float64) ID {
	t.Helper()
	id, err := s.Rect(RectConfig{Name: name, Width: Px(w), Height: Px(h)})
	if err != nil {
		t.Fatalf("Rect(%q) error: %v", name, err)
	}
	return id
}

func mustCircle(t *testing.T, s *Scene, name string, r float64) ID {
	t.Helper()
	id, err := s.Circle(CircleConfig{Name: name, Radius: r})
	if err != nil {
		t.Fatalf("Circle(%q) error: %v", name, err)
	}
	return id
}

func mustContainer(t *testing.T, s *Scene, cfg ContainerConfig) ID {
	t.Helper()
	id, err := s.Container(cfg)
	if err != nil {
		t.Fatalf("Container(%q) error: %v", cfg.Name, err)
	}
	return id
}

func mustAdd(t *testing.T, s *Scene, container, child ID) {
	t.Helper()
	if err := s.AddElement(container, child); err != nil {
		t.Fatalf("AddElement(%s, %s) error: %v", s.Name(container), s.Name(child), err)
	}
}

func mustPosition(t *testing.T, s *Scene, id ID, spec PositionSpec) {
	t.Helper()
	if err := s.Position(id, spec); err != nil {
		t.Fatalf("Position(%s) error: %v", s.Name(id), err)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) <= tol }

func assertPoint(t *testing.T, what string, got, want geom.Point) {
	t.Helper()
	if !got.ApproxEqual(want, tol) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func assertRect(t *testing.T, what string, got, want geom.Rect) {
	t.Helper()
	if !near(got.X, want.X) || !near(got.Y, want.Y) || !near(got.Width, want.Width) || !near(got.Height, want.Height) {
		t.Errorf("%s = %+v, want %+v", what, got, want)
	}
}
