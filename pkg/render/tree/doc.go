// Package tree renders the structure of a scene as a node-link diagram.
//
// # Overview
//
// Where [svg] draws what the scene looks like, this package draws how it is
// built: one node per element, solid edges from each container to the
// elements it owns, and optionally dashed edges from each positioned element
// to the element its constraint refers to. It is the quickest way to see why
// an element ended up where it did.
//
// # Rendering
//
// [ToDOT] emits Graphviz DOT. [RenderSVG] lays the graph out with an embedded
// Graphviz (no system install required):
//
//	dot := tree.ToDOT(s, tree.Options{Constraints: true})
//	svg, err := tree.RenderSVG(ctx, dot)
//
// PDF and PNG output go through [render.ToPDF] and [render.ToPNG].
//
// [svg]: github.com/matzehuels/boxscene/pkg/render/svg
package tree
