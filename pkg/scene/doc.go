// Package scene implements a box-model-aware scene graph with relative
// positioning, ownership, container layout strategies and auto-sizing.
//
// # Arena
//
// A [Scene] owns every element in an arena addressed by [ID]. The element
// tree is expressed by parent IDs and ordered child lists, so the one-parent
// policy is checkable by construction: an ID appears in at most one child
// list. Every scene has exactly one artboard, returned by [Scene.Root], whose
// border box starts at (0, 0) and sizes the rendered viewport.
//
// # Box model
//
// Each element carries a margin, border and padding ([boxmodel.Model]) and a
// declared content size. Declared sizes follow CSS content-box sizing:
//
//	content = declared width × height
//	padding = content + padding
//	border  = padding + border
//	margin  = border + margin
//
// [Scene.MarginBox], [Scene.BorderBox], [Scene.PaddingBox] and
// [Scene.ContentBox] return absolute rectangles exposing the nine anchors of
// [geom.Rect]. The bare [Scene.Anchor] accessor resolves on the content box;
// pass a [Layer] explicitly to address another box.
//
// # Coordinates
//
// An element's relative position places its border-box top-left corner in the
// content-box frame of its parent. Unattached elements are evaluated in the
// artboard's content frame but are never rendered. Absolute coordinates are
// recomputed from the parent chain on every read; nothing is memoized.
//
// # Positioning
//
// [Scene.Position] stores a constraint "put my RelativeFrom anchor at this
// reference plus (X, Y)" and resolves it immediately. Constraints are
// re-resolved whenever the scene settles, so an element keeps following its
// target. Positioning cycles are rejected with [errors.ErrCodePositionCycle],
// including an element pinned to a far edge of an auto-sized container it
// helps size.
//
// # Layout
//
// Containers own an [Arranger]. Passive arrangers ([Manual], [Freeform]) let
// children position themselves and only measure; proactive ones ([Stack],
// [Grid], [Columns]) overwrite the positions of their children. Containers
// with auto width or height grow to the union of their descendants' extents.
//
// # Settling
//
// Every mutating call settles the scene before returning: pending text is
// remeasured, constraints are resolved, containers arranged and auto-sized
// post-order, repeated until the geometry is stable. A layout that is still
// moving after one pass per element (plus a few) fails the call with
// [errors.ErrCodePositionCycle] and the call is undone. [Scene.Batch] defers
// settling across many calls. A settled scene is safe for concurrent reads.
package scene
