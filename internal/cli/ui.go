package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/boxscene/pkg/geom"
	"github.com/matzehuels/boxscene/pkg/scene"
)

// Status lines go to stdout, errors to stderr. Tests swap these.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // links
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

// Box layers use the colors of browser box-model inspectors.
var layerColors = map[scene.Layer]lipgloss.Color{
	scene.MarginBox:  lipgloss.Color("215"), // orange
	scene.BorderBox:  lipgloss.Color("222"), // sand
	scene.PaddingBox: lipgloss.Color("114"), // green
	scene.ContentBox: lipgloss.Color("110"), // blue
}

// boxLayers lists the four boxes from the outside in.
var boxLayers = []scene.Layer{scene.MarginBox, scene.BorderBox, scene.PaddingBox, scene.ContentBox}

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
)

// layerStyle colors text for one box layer.
func layerStyle(l scene.Layer) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(layerColors[l])
}

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stderr, styleIconError.Render("✗")+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render("!")+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render("›")+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printStats prints "  12 elements · 3 files · fresh" under a rendered input.
func printStats(elements, files int, cached bool) {
	var parts []string
	if elements > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d elements", elements)))
	}
	if files > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d files", files)))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// =============================================================================
// Geometry
// =============================================================================

// fmtRect formats a box as "WxH at (x, y)".
func fmtRect(r geom.Rect) string {
	return fmt.Sprintf("%gx%g at (%g, %g)", r.Width, r.Height, r.X, r.Y)
}

// boxLines returns one colored "layer  WxH at (x, y)" line per box, outside in.
func boxLines(s *scene.Scene, id scene.ID, keyWidth int) []string {
	lines := make([]string, 0, len(boxLayers))
	for _, l := range boxLayers {
		key := layerStyle(l).Width(keyWidth).Render(l.String())
		lines = append(lines, key+" "+StyleValue.Render(fmtRect(s.Box(id, l))))
	}
	return lines
}
