package render

import (
	"context"
	"testing"

	"github.com/matzehuels/boxscene/pkg/errors"
)

func TestMissingConverter(t *testing.T) {
	old := Converter
	Converter = "boxscene-no-such-converter"
	t.Cleanup(func() { Converter = old })

	if Available() {
		t.Fatal("Available() = true for a missing program")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestToPNGRejectsScale(t *testing.T) {
	for _, scale := range []float64{0, -1, 11} {
		if _, err := ToPNG(context.Background(), []byte("<svg/>"), scale); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ToPNG(scale=%v) error = %v, want %s", scale, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="4" height="4"><rect width="4" height="4"/></svg>`)
	png, err := ToPNG(context.Background(), svg, 1)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("ToPNG() did not produce a PNG")
	}
}
