package errors

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Supported output formats.
var formats = []string{"svg", "png", "pdf", "json", "dot"}

// ValidateFormat checks that an output format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(formats, format) {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(formats, ", "))
	}
	return nil
}

// ValidateFormats checks that every format in the list is supported.
func ValidateFormats(list []string) error {
	for _, f := range list {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateScale checks a raster scale factor for PNG output.
// The scale must be finite and within (0, 10].
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 || scale > 10 {
		return New(ErrCodeInvalidInput, "invalid scale %v (must be within (0, 10])", scale)
	}
	return nil
}

// elementIDRegex matches identifiers usable as diagram element ids and as
// SVG id attributes.
var elementIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateElementID validates a diagram element identifier.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - Must start with a letter or underscore
//   - Maximum length of 128 characters
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDiagram, "element id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidDiagram, "element id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidDiagram, "element id %q contains whitespace or control characters", id)
		}
	}
	if !elementIDRegex.MatchString(id) {
		return New(ErrCodeInvalidDiagram, "invalid element id: %q", id)
	}
	return nil
}

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColorRegex matches CSS color keywords and functional notations.
var namedColorRegex = regexp.MustCompile(`^([a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\))$`)

// ValidateColor validates a fill, stroke or background color.
// Empty strings are allowed and mean "not set".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if hexColorRegex.MatchString(color) || namedColorRegex.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidInput, "invalid color: %q", color)
}
