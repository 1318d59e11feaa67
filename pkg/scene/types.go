package scene

import (
	"fmt"
	"math"

	"github.com/matzehuels/boxscene/pkg/errors"
)

// ID addresses an element inside a Scene. The zero ID never names an element.
type ID uint32

// Kind identifies the shape of an element.
type Kind int

const (
	KindRect Kind = iota + 1
	KindCircle
	KindText
	KindContainer
	KindArtboard
	// KindLane is a manual sub-container created by a Columns container.
	KindLane
)

var kindNames = map[Kind]string{
	KindRect:      "rect",
	KindCircle:    "circle",
	KindText:      "text",
	KindContainer: "container",
	KindArtboard:  "artboard",
	KindLane:      "lane",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsContainer reports whether elements of this kind can own children.
func (k Kind) IsContainer() bool {
	return k == KindContainer || k == KindArtboard || k == KindLane
}

// Layer selects one of the four nested boxes of an element.
// The zero value is ContentBox.
type Layer int

const (
	ContentBox Layer = iota
	PaddingBox
	BorderBox
	MarginBox
)

var layerNames = map[Layer]string{
	ContentBox: "content",
	PaddingBox: "padding",
	BorderBox:  "border",
	MarginBox:  "margin",
}

func (l Layer) String() string {
	if s, ok := layerNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Layer(%d)", int(l))
}

// ParseLayer accepts "content", "padding", "border" and "margin", with an
// optional "-box" or "Box" suffix.
func ParseLayer(s string) (Layer, error) {
	switch s {
	case "", "content", "content-box", "contentBox":
		return ContentBox, nil
	case "padding", "padding-box", "paddingBox":
		return PaddingBox, nil
	case "border", "border-box", "borderBox":
		return BorderBox, nil
	case "margin", "margin-box", "marginBox":
		return MarginBox, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown box layer %q", s)
}

type lengthMode uint8

const (
	lengthUnset lengthMode = iota
	lengthPx
	lengthAuto
)

// Length is a declared dimension: unset, a fixed pixel value, or auto.
type Length struct {
	value float64
	mode  lengthMode
}

// Px returns a fixed length.
func Px(v float64) Length { return Length{value: v, mode: lengthPx} }

// Auto returns a length derived from the element's descendants.
func Auto() Length { return Length{mode: lengthAuto} }

// IsSet reports whether the length was given at all.
func (l Length) IsSet() bool { return l.mode != lengthUnset }

// IsAuto reports whether the length is auto.
func (l Length) IsAuto() bool { return l.mode == lengthAuto }

// Value returns the fixed value, or 0 for unset and auto lengths.
func (l Length) Value() float64 {
	if l.mode != lengthPx {
		return 0
	}
	return l.value
}

func (l Length) String() string {
	switch l.mode {
	case lengthPx:
		return fmt.Sprintf("%gpx", l.value)
	case lengthAuto:
		return "auto"
	}
	return "unset"
}

func (l Length) validate(what string) error {
	if l.mode != lengthPx {
		return nil
	}
	if math.IsNaN(l.value) || math.IsInf(l.value, 0) || l.value < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s must be a finite non-negative length, got %g", what, l.value)
	}
	return nil
}

// Style is presentation data carried through to renderers. The scene never
// interprets it.
type Style struct {
	Fill         string
	Stroke       string
	StrokeWidth  float64
	Opacity      float64 // 0 means fully opaque
	CornerRadius float64
	Class        string
}
