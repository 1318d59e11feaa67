// Package geometry exports the resolved boxes of a scene as JSON.
//
// The document lists every element with its four nested boxes in absolute
// artboard coordinates, so external tools can hit-test, annotate or diff a
// diagram without re-implementing the box model.
package geometry

import (
	"encoding/json"

	"github.com/matzehuels/boxscene/pkg/geom"
	"github.com/matzehuels/boxscene/pkg/scene"
)

// Option configures JSON rendering via [Render].
type Option func(*renderer)

type renderer struct {
	unattached bool
	title      string
}

// WithUnattached includes elements that are not part of the rendered tree.
// Their boxes are expressed in the artboard's content frame.
func WithUnattached() Option { return func(r *renderer) { r.unattached = true } }

// WithTitle records the diagram title.
func WithTitle(t string) Option { return func(r *renderer) { r.title = t } }

// Document is the exported geometry.
type Document struct {
	Title      string    `json:"title,omitempty"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Background string    `json:"background,omitempty"`
	Elements   []Element `json:"elements"`
}

// Element is one element and its boxes.
type Element struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Parent     string    `json:"parent,omitempty"`
	Depth      int       `json:"depth"`
	Attached   bool      `json:"attached"`
	Z          *int      `json:"z,omitempty"`
	MarginBox  Box       `json:"margin_box"`
	BorderBox  Box       `json:"border_box"`
	PaddingBox Box       `json:"padding_box"`
	ContentBox Box       `json:"content_box"`
	Translate  *Vector   `json:"translate,omitempty"`
	Rotation   *Rotation `json:"rotation,omitempty"`
	Radius     float64   `json:"radius,omitempty"`
	Text       string    `json:"text,omitempty"`
	Pending    bool      `json:"pending_measurement,omitempty"`
}

// Box is an axis-aligned rectangle.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Vector is a displacement.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rotation is a visual rotation about an absolute pivot.
type Rotation struct {
	Deg    float64 `json:"deg"`
	PivotX float64 `json:"pivot_x"`
	PivotY float64 `json:"pivot_y"`
}

// Build collects the geometry of a scene. Attached elements come first in
// render order, followed by unattached ones in creation order if requested.
func Build(s *scene.Scene, opts ...Option) Document {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	view := s.BorderBox(s.Root())
	doc := Document{
		Title:      r.title,
		Width:      view.Width,
		Height:     view.Height,
		Background: s.Background(),
		Elements:   []Element{},
	}

	s.Walk(func(id scene.ID, depth int) bool {
		doc.Elements = append(doc.Elements, element(s, id, depth))
		return true
	})
	if r.unattached {
		for _, id := range s.Elements() {
			if !s.Attached(id) {
				doc.Elements = append(doc.Elements, element(s, id, 0))
			}
		}
	}
	return doc
}

// Render exports the scene geometry as a pretty-printed JSON document.
func Render(s *scene.Scene, opts ...Option) ([]byte, error) {
	return json.MarshalIndent(Build(s, opts...), "", "  ")
}

func element(s *scene.Scene, id scene.ID, depth int) Element {
	e := Element{
		ID:         s.Name(id),
		Kind:       s.Kind(id).String(),
		Depth:      depth,
		Attached:   s.Attached(id),
		MarginBox:  box(s.MarginBox(id)),
		BorderBox:  box(s.BorderBox(id)),
		PaddingBox: box(s.PaddingBox(id)),
		ContentBox: box(s.ContentBox(id)),
		Pending:    s.Pending(id),
	}
	if p, ok := s.Parent(id); ok {
		e.Parent = s.Name(p)
	}
	if z, ok := s.ZIndex(id); ok {
		e.Z = &z
	}
	if t := s.Translation(id); t != (geom.Point{}) {
		e.Translate = &Vector{X: t.X, Y: t.Y}
	}
	if pivot, deg, ok := s.RotationPivot(id); ok {
		e.Rotation = &Rotation{Deg: deg, PivotX: pivot.X, PivotY: pivot.Y}
	}
	switch s.Kind(id) {
	case scene.KindCircle:
		e.Radius = s.Radius(id)
	case scene.KindText:
		e.Text, _ = s.TextContent(id)
	}
	return e
}

func box(r geom.Rect) Box {
	return Box{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
