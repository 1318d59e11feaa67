package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/render"
	"github.com/matzehuels/boxscene/pkg/scene"
)

// Options configures tree rendering.
type Options struct {
	// Detailed adds the border box and layout to node labels.
	// When false, only the element name is shown.
	Detailed bool
	// Constraints draws dashed edges for relative positioning.
	Constraints bool
	// Unattached includes elements that are not part of the rendered tree.
	Unattached bool
}

// graphHeader is written before the nodes of every tree graph.
const graphHeader = `digraph G {
  rankdir=TB;
  bgcolor="transparent";
  ranksep=0.5;
  nodesep=0.3;
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];

`

// constraintColor draws positioning edges apart from ownership edges.
const constraintColor = "#1c7ed6"

// ToDOT converts the ownership tree of a scene to Graphviz DOT.
//
// Lanes created by column layouts use dashed outlines. Unattached elements,
// when included, are grey.
func ToDOT(s *scene.Scene, opts Options) string {
	shown := func(id scene.ID) bool { return opts.Unattached || s.Attached(id) }

	var nodes, edges strings.Builder
	for _, id := range s.Elements() {
		if !shown(id) {
			continue
		}
		name := s.Name(id)
		fmt.Fprintf(&nodes, "  %q [%s];\n", name, strings.Join(fmtAttrs(s, id, opts.Detailed), ", "))
		for _, child := range s.RenderOrder(id) {
			fmt.Fprintf(&edges, "  %q -> %q;\n", name, s.Name(child))
		}
		if opts.Constraints {
			writeConstraint(&edges, s, id, shown)
		}
	}
	return graphHeader + nodes.String() + "\n" + edges.String() + "}\n"
}

// writeConstraint adds a dashed edge from id to the element it is positioned
// against, labelled anchor@layer. Literal positions have no edge.
func writeConstraint(w *strings.Builder, s *scene.Scene, id scene.ID, shown func(scene.ID) bool) {
	spec, ok := s.Constraint(id)
	if !ok || spec.RelativeTo.IsLiteral() {
		return
	}
	target := spec.RelativeTo.Target()
	if !shown(target) {
		return
	}
	anchor, layer := spec.RelativeTo.Anchor()
	fmt.Fprintf(w, "  %q -> %q [style=dashed, constraint=false, color=%q, label=%q];\n",
		s.Name(id), s.Name(target), constraintColor, anchor.String()+"@"+layer.String())
}

func fmtLabel(s *scene.Scene, id scene.ID, detailed bool) string {
	name := s.Name(id)
	if !detailed {
		return name
	}

	b := s.BorderBox(id)
	parts := []string{
		s.Kind(id).String(),
		fmt.Sprintf("%gx%g at (%g, %g)", b.Width, b.Height, b.X, b.Y),
	}
	if s.Kind(id).IsContainer() {
		parts = append(parts, fmt.Sprintf("layout: %T", s.Layout(id)))
	}
	if z, ok := s.ZIndex(id); ok {
		parts = append(parts, fmt.Sprintf("z: %d", z))
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(s *scene.Scene, id scene.ID, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(s, id, detailed))}
	switch {
	case !s.Attached(id):
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=\"#555555\"")
	case s.Kind(id) == scene.KindLane:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	case s.Kind(id) == scene.KindArtboard:
		attrs = append(attrs, "style=\"rounded,filled,bold\"")
	}
	return attrs
}

// RenderSVG lays out a DOT graph with the embedded Graphviz and returns SVG
// sized in pixels.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := layout(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

func layout(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "start graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse tree graph")
	}
	defer g.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, g, format, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "lay out tree graph as %s", format)
	}
	return out.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag, which sizes the document in
// points, with a pixel viewport matching the viewBox.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[3]), 64)
	h, errH := strconv.ParseFloat(string(m[4]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPNG rasterizes the tree graph through its SVG rendering so that
// scale behaves as for diagrams.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
