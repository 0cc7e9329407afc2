// Package svg renders laid-out trees as SVG 1.1 documents.
//
// A document holds, in order: a title, gradient definitions for edges whose
// endpoints differ in color, an optional border rectangle covering the
// canvas, and one group per placed node. A group opens with a <desc>
// holding the node value, then the connector lines to its children, then
// the node circle. Later groups paint over earlier ones, so a child's
// circle covers the end of its parent's connector.
//
// Positions and radii come straight from the layout and the node sizes;
// nothing is snapped to whole pixels.
//
// [Render] emits a computed [layout.Result]; [Document] lays out a tree and
// emits it; [WriteFile] does the same and writes the result atomically.
//
//	err := svg.WriteFile(root, "tree.svg",
//	    svg.WithSize(600, 400),
//	    svg.WithGradient(true),
//	    svg.WithBorder(false),
//	)
package svg
