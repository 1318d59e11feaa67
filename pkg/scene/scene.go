package scene

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxscene/pkg/boxmodel"
	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/geom"
	"github.com/matzehuels/boxscene/pkg/measure"
)

// Scene is an arena of elements rooted at a single artboard.
//
// A Scene is not safe for concurrent mutation. Once settled (every mutating
// method settles before returning, except inside [Scene.Batch]) it may be
// read from multiple goroutines.
type Scene struct {
	nodes      []*node
	names      map[string]ID
	root       ID
	background string
	seq        uint32
	batching   bool

	measurer measure.Measurer
	logger   *log.Logger
}

type node struct {
	id   ID
	kind Kind
	name string

	box    boxmodel.Model
	width  Length
	height Length
	size   geom.Size // resolved content size

	parent   ID
	children []ID
	rel      geom.Point // border-box origin in the parent content frame
	offset   geom.Point // accumulated translation

	constraint *PositionSpec
	rotation   *RotateSpec
	z          *int
	seq        uint32

	arranger Arranger
	lanes    []ID
	cell     *Cell // explicit grid address
	placed   *Cell // cell assigned by the last grid arrangement

	radius      float64
	text        string
	font        measure.Style
	textPending bool

	style Style
}

// ArtboardConfig configures the root container.
type ArtboardConfig struct {
	// Width and Height of the artboard content box. Unset means auto.
	Width, Height Length
	Background    string
	Box           boxmodel.Config
}

// Option configures a Scene.
type Option func(*Scene)

// WithMeasurer sets the text measurer. The default is [measure.Estimator].
func WithMeasurer(m measure.Measurer) Option {
	return func(s *Scene) {
		if m != nil {
			s.measurer = m
		}
	}
}

// WithLogger sets the logger used for debug traces. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a scene with an artboard.
func New(cfg ArtboardConfig, opts ...Option) (*Scene, error) {
	s := &Scene{
		names:    make(map[string]ID),
		measurer: measure.Estimator{},
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := cfg.Width.validate("artboard width"); err != nil {
		return nil, err
	}
	if err := cfg.Height.validate("artboard height"); err != nil {
		return nil, err
	}

	n := s.alloc(KindArtboard, "artboard")
	n.box = cfg.Box.Resolve()
	n.width, n.height = orAuto(cfg.Width), orAuto(cfg.Height)
	n.arranger = Manual{}
	s.root = n.id
	s.background = cfg.Background
	if err := s.settle(); err != nil {
		return nil, err
	}
	return s, nil
}

func orAuto(l Length) Length {
	if !l.IsSet() {
		return Auto()
	}
	return l
}

func (s *Scene) alloc(kind Kind, name string) *node {
	s.seq++
	n := &node{id: ID(len(s.nodes) + 1), kind: kind, name: name, seq: s.seq}
	s.nodes = append(s.nodes, n)
	if name != "" {
		s.names[name] = n.id
	}
	return n
}

func (s *Scene) get(id ID) *node {
	if id == 0 || int(id) > len(s.nodes) {
		return nil
	}
	return s.nodes[id-1]
}

func (s *Scene) lookup(id ID) (*node, error) {
	n := s.get(id)
	if n == nil {
		return nil, errors.New(errors.ErrCodeUnknownElement, "unknown element %d", id)
	}
	return n, nil
}

// label names an element in error messages.
func (s *Scene) label(id ID) string {
	n := s.get(id)
	if n == nil {
		return "?"
	}
	return n.name
}

// Root returns the artboard.
func (s *Scene) Root() ID { return s.root }

// Background returns the artboard background color.
func (s *Scene) Background() string { return s.background }

// Len returns the number of elements, artboard included.
func (s *Scene) Len() int { return len(s.nodes) }

// Elements returns every element ID in creation order.
func (s *Scene) Elements() []ID {
	ids := make([]ID, len(s.nodes))
	for i, n := range s.nodes {
		ids[i] = n.id
	}
	return ids
}

// Lookup finds an element by name.
func (s *Scene) Lookup(name string) (ID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// Name returns the element's name.
func (s *Scene) Name(id ID) string {
	if n := s.get(id); n != nil {
		return n.name
	}
	return ""
}

// Kind returns the element's kind, or 0 for unknown IDs.
func (s *Scene) Kind(id ID) Kind {
	if n := s.get(id); n != nil {
		return n.kind
	}
	return 0
}

// Parent returns the owning container.
func (s *Scene) Parent(id ID) (ID, bool) {
	if n := s.get(id); n != nil && n.parent != 0 {
		return n.parent, true
	}
	return 0, false
}

// Children returns a copy of the element's children in insertion order.
func (s *Scene) Children(id ID) []ID {
	if n := s.get(id); n != nil {
		return slices.Clone(n.children)
	}
	return nil
}

// Attached reports whether the element is reachable from the artboard and
// will therefore be rendered.
func (s *Scene) Attached(id ID) bool {
	for n := s.get(id); n != nil; n = s.get(n.parent) {
		if n.id == s.root {
			return true
		}
	}
	return false
}

// RelativePosition returns the element's border-box origin in its parent's
// content frame, before translation.
func (s *Scene) RelativePosition(id ID) geom.Point {
	if n := s.get(id); n != nil {
		return n.rel
	}
	return geom.Point{}
}

// BoxModel returns the resolved box model.
func (s *Scene) BoxModel(id ID) boxmodel.Model {
	if n := s.get(id); n != nil {
		return n.box
	}
	return boxmodel.Model{}
}

// DeclaredSize returns the declared width and height.
func (s *Scene) DeclaredSize(id ID) (width, height Length) {
	if n := s.get(id); n != nil {
		return n.width, n.height
	}
	return Length{}, Length{}
}

// Style returns the presentation style.
func (s *Scene) Style(id ID) Style {
	if n := s.get(id); n != nil {
		return n.style
	}
	return Style{}
}

// SetStyle replaces the presentation style. Styles never affect geometry.
func (s *Scene) SetStyle(id ID, st Style) error {
	n, err := s.lookup(id)
	if err != nil {
		return err
	}
	n.style = st
	return nil
}

// Radius returns a circle's radius.
func (s *Scene) Radius(id ID) float64 {
	if n := s.get(id); n != nil {
		return n.radius
	}
	return 0
}

// TextContent returns a text element's content and font.
func (s *Scene) TextContent(id ID) (string, measure.Style) {
	if n := s.get(id); n != nil {
		return n.text, n.font
	}
	return "", measure.Style{}
}

// Layout returns the container's layout strategy.
func (s *Scene) Layout(id ID) Arranger {
	if n := s.get(id); n != nil {
		return n.arranger
	}
	return nil
}

// Constraint returns the stored position constraint.
func (s *Scene) Constraint(id ID) (PositionSpec, bool) {
	if n := s.get(id); n != nil && n.constraint != nil {
		return *n.constraint, true
	}
	return PositionSpec{}, false
}
