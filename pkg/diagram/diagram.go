package diagram

import (
	"bytes"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boxscene/pkg/errors"
)

// Document is a decoded diagram.
type Document struct {
	Title    string    `toml:"title"`
	Artboard Artboard  `toml:"artboard"`
	Elements []Element `toml:"element"`
}

// Artboard configures the root container.
type Artboard struct {
	Width      Dimension `toml:"width"`
	Height     Dimension `toml:"height"`
	Background string    `toml:"background"`
	Margin     BoxSpec   `toml:"margin"`
	Border     BoxSpec   `toml:"border"`
	Padding    BoxSpec   `toml:"padding"`
}

// Element is one [[element]] table.
type Element struct {
	ID   string `toml:"id"`
	Kind string `toml:"kind"`

	Width  Dimension `toml:"width"`
	Height Dimension `toml:"height"`
	Radius float64   `toml:"radius"`

	Text     string  `toml:"text"`
	FontSize float64 `toml:"font_size"`
	Font     string  `toml:"font"`
	Bold     bool    `toml:"bold"`

	Margin  BoxSpec `toml:"margin"`
	Border  BoxSpec `toml:"border"`
	Padding BoxSpec `toml:"padding"`

	Fill         string  `toml:"fill"`
	Stroke       string  `toml:"stroke"`
	StrokeWidth  float64 `toml:"stroke_width"`
	Opacity      float64 `toml:"opacity"`
	CornerRadius float64 `toml:"corner_radius"`
	Class        string  `toml:"class"`

	Parent   string `toml:"parent"`
	Detached bool   `toml:"detached"`
	Column   *int   `toml:"column"`
	Cell     []int  `toml:"cell"`

	Layout        string  `toml:"layout"`
	Spacing       float64 `toml:"spacing"`
	Align         string  `toml:"align"`
	RespectMargin bool    `toml:"respect_margin"`
	Columns       int     `toml:"columns"`
	Rows          int     `toml:"rows"`
	CellWidth     float64 `toml:"cell_width"`
	CellHeight    float64 `toml:"cell_height"`
	ColumnGap     float64 `toml:"column_gap"`
	RowGap        float64 `toml:"row_gap"`
	HAlign        string  `toml:"halign"`
	VAlign        string  `toml:"valign"`
	Gutter        float64 `toml:"gutter"`
	LaneWidth     float64 `toml:"lane_width"`

	Position  *Position `toml:"position"`
	Translate *Point2   `toml:"translate"`
	Rotate    *Rotation `toml:"rotate"`
	Z         *int      `toml:"z"`
}

// Position is an [element.position] table.
type Position struct {
	From  string  `toml:"from"`
	Layer string  `toml:"layer"`
	To    Target  `toml:"to"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
}

// Rotation is an [element.rotate] table. An omitted about rotates around the
// element's own center.
type Rotation struct {
	Deg   float64 `toml:"deg"`
	About Target  `toml:"about"`
}

// Decode reads a document. Unknown keys are rejected so that typos surface
// as errors instead of silently ignored settings.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "decode diagram")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &doc, nil
}

// Parse decodes a document from bytes.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// Load reads and decodes a document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "diagram %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read diagram %s", path)
	}
	return Parse(data)
}
