// Package nodelink renders trees through Graphviz.
//
// [ToDOT] turns a tree into Graphviz DOT source with one filled circle per
// node occurrence, colored and sized from the node style. [RenderSVG] runs
// the DOT source through the in-process Graphviz engine, giving a layout
// computed by Graphviz itself instead of the band layout of the svg
// package:
//
//	dot, err := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// This package uses [github.com/goccy/go-graphviz].
package nodelink
