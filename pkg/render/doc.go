// Package render converts rendered scenes between output formats.
//
// Scenes are serialized by the subpackages:
//
//   - [svg]: the scene itself as SVG markup
//   - [tree]: the ownership tree as Graphviz DOT or SVG
//   - [geometry]: every element's four boxes as JSON
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg):
//
//	out := svg.Render(s)
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0) // 2x scale
package render
