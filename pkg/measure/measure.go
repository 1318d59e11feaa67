// Package measure provides text measurement for scene text elements.
//
// Measurement is a synchronous capability injected into the scene graph. The
// scene never caches measurements itself; implementations such as [OpenType]
// own whatever caching they need. When a Measurer fails, callers fall back to
// [Estimate], which is deterministic and never fails.
package measure

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/boxscene/pkg/geom"
)

// DefaultFontSize is used when a Style leaves FontSize unset.
const DefaultFontSize = 16

// ErrUnavailable reports that a measurer cannot currently answer. The scene
// treats it like any other failure: it uses an estimate and asks again later.
var ErrUnavailable = errors.New("measure: measurer unavailable")

// Style carries the typographic inputs that affect text extent.
type Style struct {
	FontFamily string
	FontSize   float64
	Bold       bool
}

// Size returns the effective font size.
func (s Style) Size() float64 {
	if s.FontSize <= 0 {
		return DefaultFontSize
	}
	return s.FontSize
}

// Measurer reports the extent of a text run. Multi-line text is separated by
// "\n"; width is the widest line and height covers every line.
type Measurer interface {
	Measure(text string, style Style) (geom.Size, error)
}

// Func adapts a function to the Measurer interface.
type Func func(text string, style Style) (geom.Size, error)

func (f Func) Measure(text string, style Style) (geom.Size, error) { return f(text, style) }

// Heuristic ratios used by Estimate.
const (
	estimateAdvance    = 0.55
	estimateLineHeight = 1.2
)

// Estimate approximates the extent of text: 0.55·fontSize per rune on the
// widest line and 1.2·fontSize per line.
func Estimate(text string, style Style) geom.Size {
	fs := style.Size()
	lines := splitLines(text)
	widest := 0
	for _, l := range lines {
		widest = max(widest, utf8.RuneCountInString(l))
	}
	return geom.Size{
		Width:  float64(widest) * fs * estimateAdvance,
		Height: float64(len(lines)) * fs * estimateLineHeight,
	}
}

// Estimator is a Measurer backed by Estimate.
type Estimator struct{}

func (Estimator) Measure(text string, style Style) (geom.Size, error) {
	return Estimate(text, style), nil
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
