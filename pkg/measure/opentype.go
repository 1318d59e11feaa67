package measure

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/geom"
)

// OpenType measures text with the embedded Go fonts. Font families are not
// resolved; every family is measured with Go Regular (or Go Bold).
//
// Faces are created lazily per (size, weight) and cached. OpenType is safe for
// concurrent use.
type OpenType struct {
	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// NewOpenType parses the embedded fonts.
func NewOpenType() (*OpenType, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse Go Regular")
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse Go Bold")
	}
	return &OpenType{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

// Measure implements Measurer.
func (o *OpenType) Measure(text string, style Style) (geom.Size, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	face, err := o.face(faceKey{size: style.Size(), bold: style.Bold})
	if err != nil {
		return geom.Size{}, err
	}

	lines := splitLines(text)
	var widest fixed.Int26_6
	for _, l := range lines {
		widest = max(widest, font.MeasureString(face, l))
	}
	m := face.Metrics()
	lineHeight := m.Height
	if lineHeight == 0 {
		lineHeight = m.Ascent + m.Descent
	}
	return geom.Size{
		Width:  toFloat(widest),
		Height: float64(len(lines)) * toFloat(lineHeight),
	}, nil
}

// Close releases every cached face.
func (o *OpenType) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for k, f := range o.faces {
		_ = f.Close()
		delete(o.faces, k)
	}
	return nil
}

func (o *OpenType) face(k faceKey) (font.Face, error) {
	if f, ok := o.faces[k]; ok {
		return f, nil
	}
	src := o.regular
	if k.bold {
		src = o.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    k.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create face at %gpt", k.size)
	}
	o.faces[k] = f
	return f, nil
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
