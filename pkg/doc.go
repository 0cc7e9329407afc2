// Package pkg provides the libraries behind treesvg, a renderer that draws
// trees of styled nodes as SVG graphics.
//
// # Overview
//
// A tree is a root [tree.Node] whose children are drawn left to right. Every
// node carries a value and a [style.Style] (a color and a radius). Rendering
// is two passes: a layout places every node occurrence on a fixed canvas,
// then an emitter writes one circle per node and one connector per
// parent-child pair.
//
// # Architecture
//
//	tree document (.json, .toml, .yaml) / random generator / Go code
//	         ↓
//	    [tree] package (node model, validation)
//	         ↓
//	    [layout] package (depth bands, horizontal spans)
//	         ↓
//	    [render/svg] package (circles, connectors, gradients)
//	         ↓
//	    SVG / PNG / PDF / DOT / layout JSON
//
// # Quick Start
//
//	root := tree.New("-", tree.WithStyle(style.MustParse("red@6")))
//	mul := tree.New("*", tree.WithStyle(style.MustParse("#00f@8")))
//	root.AddChild(tree.New(1))
//	root.AddChild(mul)
//	mul.AddChild(tree.New(5))
//	mul.AddChild(tree.New(4))
//
//	err := svg.WriteFile(root, "expr.svg", svg.WithSize(400, 400))
//
// # Main Packages
//
// [style] - Parses `<color>@<size>` descriptors. Colors may be CSS names,
// #rgb or #rrggbb hex, or rgb() with integer or percent channels; every
// notation of one color resolves to the same [style.Color].
//
// [tree] - The node model, tree validation (cycle detection) and the seeded
// random generator.
//
// [layout] - Placement strategies behind [layout.Strategy]: [layout.EqualSplit]
// divides a parent's span evenly, [layout.Weighted] by leaf count.
//
// [render/svg] - SVG emission and atomic file writes.
//
// [render/nodelink] - Graphviz DOT export and rendering through go-graphviz.
//
// [render] - SVG to PDF/PNG conversion via rsvg-convert.
//
// [treeio] - Tree documents in JSON, TOML and YAML, and layout JSON export.
//
// ## Infrastructure
//
// [pipeline] - Load → layout → render with per-format artifact caching, used
// by the CLI and the HTTP service alike.
//
// [cache] - Artifact caches: file (CLI), Redis (service), memory and null.
//
// [observability] - Hooks for load, layout, render, cache and HTTP events.
//
// [errors] - Coded errors (INVALID_STYLE, INVALID_TREE, IO_ERROR, ...).
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/layout/...      # Specific package
//	go test -run Example ./pkg/...
//	TREESVG_TEST_REDIS=localhost:6379 go test ./pkg/cache/
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/tree
// [style]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/style
// [layout]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/render/nodelink
// [treeio]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/treeio
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/treesvg/pkg/errors
package pkg
