package measure

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/matzehuels/boxscene/pkg/geom"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		style Style
		want  geom.Size
	}{
		{"empty", "", Style{FontSize: 10}, geom.Size{Width: 0, Height: 12}},
		{"single line", "abcd", Style{FontSize: 10}, geom.Size{Width: 22, Height: 12}},
		{"default size", "ab", Style{}, geom.Size{Width: 2 * 16 * 0.55, Height: 16 * 1.2}},
		{"multi line", "ab\nabcdef", Style{FontSize: 20}, geom.Size{Width: 66, Height: 48}},
		{"runes not bytes", "ééé", Style{FontSize: 10}, geom.Size{Width: 16.5, Height: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.text, tt.style)
			if math.Abs(got.Width-tt.want.Width) > 1e-9 || math.Abs(got.Height-tt.want.Height) > 1e-9 {
				t.Errorf("Estimate(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	var m Measurer = Func(func(string, Style) (geom.Size, error) {
		return geom.Size{}, ErrUnavailable
	})
	if _, err := m.Measure("x", Style{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Measure() error = %v, want ErrUnavailable", err)
	}
}

func TestOpenType(t *testing.T) {
	ot, err := NewOpenType()
	if err != nil {
		t.Fatalf("NewOpenType() error: %v", err)
	}
	defer ot.Close()

	short, err := ot.Measure("Hi", Style{FontSize: 12})
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	long, _ := ot.Measure("Hello, world", Style{FontSize: 12})
	if short.Width <= 0 || long.Width <= short.Width {
		t.Errorf("widths short=%v long=%v, want 0 < short < long", short.Width, long.Width)
	}

	big, _ := ot.Measure("Hi", Style{FontSize: 24})
	if big.Width <= short.Width || big.Height <= short.Height {
		t.Errorf("24pt %+v not larger than 12pt %+v", big, short)
	}

	two, _ := ot.Measure("Hi\nHi", Style{FontSize: 12})
	if math.Abs(two.Height-2*short.Height) > 1e-9 {
		t.Errorf("two-line height = %v, want %v", two.Height, 2*short.Height)
	}

	bold, _ := ot.Measure("Hello, world", Style{FontSize: 12, Bold: true})
	if bold.Width <= 0 {
		t.Errorf("bold width = %v, want > 0", bold.Width)
	}
}

func TestOpenTypeConcurrent(t *testing.T) {
	ot, err := NewOpenType()
	if err != nil {
		t.Fatalf("NewOpenType() error: %v", err)
	}
	defer ot.Close()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(size float64) {
			defer wg.Done()
			if _, err := ot.Measure("concurrent", Style{FontSize: size}); err != nil {
				t.Errorf("Measure() error: %v", err)
			}
		}(float64(10 + i%3))
	}
	wg.Wait()
}
