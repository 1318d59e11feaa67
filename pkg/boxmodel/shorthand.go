package boxmodel

import (
	"strconv"
	"strings"

	"github.com/matzehuels/boxscene/pkg/errors"
)

// ParseShorthand parses a CSS spacing shorthand into a Spec.
//
// One to four whitespace-separated lengths are accepted, each optionally
// suffixed with "px":
//
//	"10"                -> all sides
//	"10px 20px"         -> vertical, horizontal
//	"10 20 30"          -> top, horizontal, bottom
//	"20px 60px 30px 40px" -> top, right, bottom, left
//
// Negative lengths and unknown units are rejected.
func ParseShorthand(s string) (Spec, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 4 {
		return Spec{}, errors.New(errors.ErrCodeInvalidBoxModel, "shorthand %q must have 1 to 4 values", s)
	}

	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseLength(f)
		if err != nil {
			return Spec{}, errors.Wrap(errors.ErrCodeInvalidBoxModel, err, "shorthand %q", s)
		}
		vals[i] = v
	}

	switch len(vals) {
	case 1:
		return All(vals[0]), nil
	case 2:
		return Symmetric(vals[0], vals[1]), nil
	case 3:
		return TRBL(vals[0], vals[1], vals[2], vals[1]), nil
	default:
		return TRBL(vals[0], vals[1], vals[2], vals[3]), nil
	}
}

func parseLength(f string) (float64, error) {
	num := strings.TrimSuffix(f, "px")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidBoxModel, "invalid length %q", f)
	}
	if v < 0 {
		return 0, errors.New(errors.ErrCodeInvalidBoxModel, "negative length %q", f)
	}
	return v, nil
}
