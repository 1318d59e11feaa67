// Package svg serializes a settled scene as SVG markup.
//
// The viewport is the artboard's border box. Elements render depth-first in
// render order (z-index, then insertion), each in its own group so rotations
// apply to whole subtrees. Unattached elements are never rendered.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/boxscene/pkg/geom"
	"github.com/matzehuels/boxscene/pkg/measure"
	"github.com/matzehuels/boxscene/pkg/scene"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	title    string
	idPrefix string
	boxes    bool
}

// WithTitle adds a <title> element.
func WithTitle(t string) Option { return func(r *renderer) { r.title = t } }

// WithIDPrefix prefixes every element id attribute. Use it when several
// diagrams are inlined into one HTML page.
func WithIDPrefix(p string) Option { return func(r *renderer) { r.idPrefix = p } }

// WithUniqueIDs prefixes element ids with a random UUID fragment.
func WithUniqueIDs() Option {
	return func(r *renderer) { r.idPrefix = uuid.NewString()[:8] + "-" }
}

// WithBoxes overlays the margin, padding and content boxes of every element.
func WithBoxes() Option { return func(r *renderer) { r.boxes = true } }

// Overlay colors used by WithBoxes.
const (
	marginColor  = "#f59f00"
	paddingColor = "#37b24d"
	contentColor = "#1c7ed6"
)

// Render serializes the scene.
func Render(s *scene.Scene, opts ...Option) []byte {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	view := s.BorderBox(s.Root())
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(view.Width), num(view.Height), num(view.Width), num(view.Height))
	if r.title != "" {
		buf.WriteString("  <title>")
		_ = xml.EscapeText(&buf, []byte(r.title))
		buf.WriteString("</title>\n")
	}

	r.element(&buf, s, s.Root(), 1)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) element(buf *bytes.Buffer, s *scene.Scene, id scene.ID, depth int) {
	indent := strings.Repeat("  ", depth)
	st := s.Style(id)

	fmt.Fprintf(buf, `%s<g id="%s" data-kind="%s"`, indent, attr(r.idPrefix+s.Name(id)), s.Kind(id))
	if st.Class != "" {
		fmt.Fprintf(buf, ` class="%s"`, attr(st.Class))
	}
	if st.Opacity > 0 && st.Opacity < 1 {
		fmt.Fprintf(buf, ` opacity="%s"`, num(st.Opacity))
	}
	if pivot, deg, ok := s.RotationPivot(id); ok {
		fmt.Fprintf(buf, ` transform="rotate(%s %s %s)"`, num(deg), num(pivot.X), num(pivot.Y))
	}
	buf.WriteString(">\n")

	inner := indent + "  "
	switch s.Kind(id) {
	case scene.KindArtboard:
		if bg := s.Background(); bg != "" {
			rectTag(buf, inner, s.BorderBox(id), paint{fill: bg})
		}
		r.frame(buf, inner, s, id, st)
	case scene.KindContainer:
		r.frame(buf, inner, s, id, st)
	case scene.KindRect:
		p := r.paint(s, id, st, "#ffffff", "#000000")
		rectTag(buf, inner, p.rect, p)
	case scene.KindCircle:
		p := r.paint(s, id, st, "#ffffff", "#000000")
		c := s.ContentBox(id).Center()
		fmt.Fprintf(buf, `%s<circle cx="%s" cy="%s" r="%s"%s/>`+"\n", inner, num(c.X), num(c.Y), num(s.Radius(id)), p.attrs())
	case scene.KindText:
		framed := st.Stroke != "" || !s.BoxModel(id).Border.IsZero()
		if framed {
			r.frame(buf, inner, s, id, st)
		}
		textTag(buf, inner, s, id, st, framed)
	}

	if r.boxes && s.Kind(id) != scene.KindArtboard {
		outline(buf, inner, s.MarginBox(id), marginColor)
		outline(buf, inner, s.PaddingBox(id), paddingColor)
		outline(buf, inner, s.ContentBox(id), contentColor)
	}

	for _, c := range s.RenderOrder(id) {
		r.element(buf, s, c, depth+1)
	}
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

// frame draws a rectangle behind containers and texts, only when styled.
func (r *renderer) frame(buf *bytes.Buffer, indent string, s *scene.Scene, id scene.ID, st scene.Style) {
	if st.Fill == "" && st.Stroke == "" && s.BoxModel(id).Border.IsZero() {
		return
	}
	p := r.paint(s, id, st, "none", "#000000")
	rectTag(buf, indent, p.rect, p)
}

type paint struct {
	fill, stroke string
	width        float64
	radius       float64
	rect         geom.Rect
}

// paint resolves fill and stroke. A uniform border draws as a stroke centered
// inside the border box; otherwise StrokeWidth outlines the border box.
func (r *renderer) paint(s *scene.Scene, id scene.ID, st scene.Style, fill, stroke string) paint {
	p := paint{fill: st.Fill, stroke: st.Stroke, width: st.StrokeWidth, radius: st.CornerRadius, rect: s.BorderBox(id)}
	if p.fill == "" {
		p.fill = fill
	}
	b := s.BoxModel(id).Border
	if bw := b.Top; bw > 0 && b.Right == bw && b.Bottom == bw && b.Left == bw {
		p.width = bw
		p.rect = p.rect.Inset(bw/2, bw/2, bw/2, bw/2)
	}
	if p.stroke == "" && (p.width > 0 || st.Fill == "") {
		p.stroke = stroke
	}
	if p.width == 0 && p.stroke != "" {
		p.width = 1
	}
	return p
}

func (p paint) attrs() string {
	var b strings.Builder
	fmt.Fprintf(&b, ` fill="%s"`, attr(p.fill))
	if p.stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s" stroke-width="%s"`, attr(p.stroke), num(p.width))
	}
	return b.String()
}

func rectTag(buf *bytes.Buffer, indent string, r geom.Rect, p paint) {
	fmt.Fprintf(buf, `%s<rect x="%s" y="%s" width="%s" height="%s"`, indent, num(r.X), num(r.Y), num(r.Width), num(r.Height))
	if p.radius > 0 {
		fmt.Fprintf(buf, ` rx="%s"`, num(p.radius))
	}
	buf.WriteString(p.attrs())
	buf.WriteString("/>\n")
}

func outline(buf *bytes.Buffer, indent string, r geom.Rect, color string) {
	fmt.Fprintf(buf, `%s<rect class="box-outline" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="0.5" stroke-dasharray="2 2"/>`+"\n",
		indent, num(r.X), num(r.Y), num(r.Width), num(r.Height), color)
}

// Baseline offset of the first line as a fraction of the font size.
const ascent = 0.8

// textTag writes the text lines. A framed text uses its fill for the frame
// and draws the glyphs in black.
func textTag(buf *bytes.Buffer, indent string, s *scene.Scene, id scene.ID, st scene.Style, framed bool) {
	text, font := s.TextContent(id)
	content := s.ContentBox(id)
	lines := strings.Split(text, "\n")
	lineHeight := content.Height / float64(max(1, len(lines)))
	size := font.Size()

	fill := st.Fill
	if fill == "" || framed {
		fill = "#000000"
	}
	fmt.Fprintf(buf, `%s<text x="%s" y="%s" font-size="%s" fill="%s"`,
		indent, num(content.X), num(content.Y+size*ascent), num(size), attr(fill))
	fmt.Fprintf(buf, ` font-family="%s"`, attr(family(font)))
	if font.Bold {
		buf.WriteString(` font-weight="bold"`)
	}
	buf.WriteString(">")
	for i, line := range lines {
		if i == 0 {
			_ = xml.EscapeText(buf, []byte(line))
			continue
		}
		fmt.Fprintf(buf, `<tspan x="%s" dy="%s">`, num(content.X), num(lineHeight))
		_ = xml.EscapeText(buf, []byte(line))
		buf.WriteString("</tspan>")
	}
	buf.WriteString("</text>\n")
}

func family(f measure.Style) string {
	if f.FontFamily != "" {
		return f.FontFamily
	}
	return "Go, Helvetica, Arial, sans-serif"
}

func attr(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
