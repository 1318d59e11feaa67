package boxmodel

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/geom"
)

func TestSpecResolve(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want Sides
	}{
		{"zero spec", Spec{}, Sides{}},
		{"uniform", All(20), Sides{20, 20, 20, 20}},
		{"explicit", TRBL(1, 2, 3, 4), Sides{1, 2, 3, 4}},
		{"partial defaults to zero", Spec{Left: Value(12)}, Sides{Left: 12}},
		{"side overrides uniform", Spec{Uniform: Value(5), Top: Value(9)}, Sides{9, 5, 5, 5}},
		{"negative clamps", TRBL(-3, 2, -1, 0), Sides{0, 2, 0, 0}},
		{"symmetric", Symmetric(10, 30), Sides{10, 30, 10, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.spec.Resolve()); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigResolveIsIndependent(t *testing.T) {
	m := Config{
		Margin:  All(4),
		Padding: Spec{Top: Value(7)},
	}.Resolve()

	want := Model{
		Margin:  Uniform(4),
		Padding: Sides{Top: 7},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
	if got := m.Insets(); got != (Sides{Top: 7}) {
		t.Errorf("Insets() = %v, want 7 0 0 0", got)
	}
}

func TestSidesShrinkGrow(t *testing.T) {
	r := geom.Rect{Width: 100, Height: 60}
	s := Sides{Top: 1, Right: 2, Bottom: 3, Left: 4}
	if got := s.Grow(s.Shrink(r)); got != r {
		t.Errorf("Grow(Shrink(r)) = %+v, want %+v", got, r)
	}
	if s.Horizontal() != 6 || s.Vertical() != 4 {
		t.Errorf("Horizontal/Vertical = %v/%v, want 6/4", s.Horizontal(), s.Vertical())
	}
}

func TestParseShorthand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Sides
		wantErr bool
	}{
		{"one value", "10", Sides{10, 10, 10, 10}, false},
		{"px suffix", "10px", Sides{10, 10, 10, 10}, false},
		{"two values", "10px 20px", Sides{10, 20, 10, 20}, false},
		{"three values", "1 2 3", Sides{1, 2, 3, 2}, false},
		{"four values", "20px 60px 30px 40px", Sides{20, 60, 30, 40}, false},
		{"decimals", "0.5 1.5", Sides{0.5, 1.5, 0.5, 1.5}, false},

		{"empty", "", Sides{}, true},
		{"five values", "1 2 3 4 5", Sides{}, true},
		{"unit", "1em", Sides{}, true},
		{"negative", "-4px", Sides{}, true},
		{"garbage", "wide", Sides{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseShorthand(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseShorthand(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidBoxModel) {
					t.Errorf("ParseShorthand(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidBoxModel)
				}
				return
			}
			if got := spec.Resolve(); got != tt.want {
				t.Errorf("ParseShorthand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
