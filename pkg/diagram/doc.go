// Package diagram decodes declarative TOML diagram documents and builds them
// into a settled [scene.Scene].
//
// A document has one [artboard] table and any number of [[element]] tables:
//
//	[artboard]
//	padding = 20
//	background = "#ffffff"
//
//	[[element]]
//	id = "stack"
//	kind = "container"
//	layout = "vstack"
//	align = "end"
//	spacing = 10
//
//	[[element]]
//	id = "title"
//	kind = "rect"
//	width = 180
//	height = 40
//	parent = "stack"
//
//	[[element]]
//	id = "badge"
//	kind = "circle"
//	radius = 12
//	[element.position]
//	from = "center"
//	to = "title.topRight@border"
//
// Elements attach to the artboard unless parent names a container, or
// detached = true keeps them out of the render tree (they still take part in
// positioning). Lanes of a columns container are addressed with parent plus
// column; grid cells with parent plus cell = [row, col].
//
// Box specs (margin, border, padding) accept a number, a CSS shorthand string
// such as "20px 60px 30px 40px", or a table with top/right/bottom/left keys.
// Width and height accept a number, "120px" or "auto".
//
// Position targets are either "id", "id.anchor" or "id.anchor@layer", or a
// literal [x, y] in the parent's content frame.
package diagram
