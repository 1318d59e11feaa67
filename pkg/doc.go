// Package pkg provides the core libraries for boxscene diagrams.
//
// # Overview
//
// Boxscene lays out declarative 2D diagrams. Every element carries a CSS-like
// box model (margin, border, padding, content) and is placed by anchoring one
// of its reference points to another element's, or by its container's layout
// strategy. The pkg directory is organized into three areas:
//
//  1. Layout core - [geom], [boxmodel], [measure] and [scene]
//  2. Documents and sinks - [diagram] and the [render] packages
//  3. Infrastructure - [cache], [pipeline], [server], [errors], [observability]
//
// # Architecture
//
// The typical data flow through boxscene:
//
//	TOML diagram
//	     ↓
//	[diagram] package (decode + validate)
//	     ↓
//	[scene] package (ownership, positioning, layout, auto-sizing)
//	     ↓
//	[render/svg], [render/geometry], [render/tree] sinks
//	     ↓
//	SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Build a scene directly and render it:
//
//	import (
//	    "github.com/matzehuels/boxscene/pkg/boxmodel"
//	    "github.com/matzehuels/boxscene/pkg/geom"
//	    "github.com/matzehuels/boxscene/pkg/render/svg"
//	    "github.com/matzehuels/boxscene/pkg/scene"
//	)
//
//	s, _ := scene.New(scene.ArtboardConfig{Box: boxmodel.Config{Padding: boxmodel.All(10)}})
//	box, _ := s.Rect(scene.RectConfig{Name: "box", Width: scene.Px(100), Height: scene.Px(40)})
//	dot, _ := s.Circle(scene.CircleConfig{Name: "dot", Radius: 5})
//	_ = s.AddElement(s.Root(), box)
//	_ = s.AddElement(s.Root(), dot)
//	_ = s.Position(dot, scene.PositionSpec{RelativeTo: scene.AnchorOf(box, geom.TopRight)})
//
//	out := svg.Render(s)
//
// Or go through the [pipeline] for files, caching and every output format:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{Path: "diagram.toml", Formats: []string{"svg", "json"}})
//
// # Main Packages
//
//   - [geom]: points, rects, the nine anchors and alignment
//   - [boxmodel]: four-sided specs, resolution and CSS shorthand parsing
//   - [measure]: text measurement (OpenType and estimates)
//   - [scene]: the element arena and every layout rule
//   - [diagram]: TOML documents built into scenes
//   - [render]: SVG to PNG/PDF conversion; sinks live in subpackages
//   - [cache]: file, Redis and null artifact caches
//   - [pipeline]: load, build and render with caching
//   - [server]: the HTTP preview API
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/geom
// [boxmodel]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/boxmodel
// [measure]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/measure
// [scene]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/scene
// [diagram]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/render/svg
// [render/geometry]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/render/geometry
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/render/tree
// [cache]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/boxscene/pkg/observability
package pkg
