// Package render holds the tree renderers and the format conversion they
// share.
//
// # Renderers
//
// The [svg] subpackage draws a tree with the band layout of
// [github.com/matzehuels/treesvg/pkg/layout]: circles on horizontal bands,
// straight connectors, optional gradient strokes and a border. The
// [nodelink] subpackage hands the tree to Graphviz instead.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	doc, err := svg.Document(root)
//	pdf, err := render.ToPDF(ctx, doc)
//	png, err := render.ToPNG(ctx, doc, 2.0)  // 2x scale
//
// [svg]: github.com/matzehuels/treesvg/pkg/render/svg
// [nodelink]: github.com/matzehuels/treesvg/pkg/render/nodelink
package render
