// Package geom provides the geometric primitives shared by the scene graph
// and its renderers.
//
// # Coordinates
//
// All coordinates use SVG conventions: the origin is the top-left corner and
// y grows downwards. Lengths are in user units (pixels in SVG output).
//
// # Anchors
//
// A [Rect] exposes nine named reference points (corners, edge midpoints and
// center). Anchors are always computed from the rectangle's origin and size,
// never stored, so they cannot drift out of sync:
//
//	r := geom.Rect{X: 10, Y: 20, Width: 100, Height: 50}
//	r.TopRight()         // (110, 20)
//	r.At(geom.Center)    // (60, 45)
//
// The [Anchor] zero value is [Center], which is also the default reference
// point used by the positioning resolver in package scene.
package geom
