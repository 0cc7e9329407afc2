// Package style resolves node styles: a color and a size.
//
// A style is written as a short descriptor of the form `<color>@<size>`:
//
//	green@12
//	#aa8ef7@3
//	#f00@38
//	rgb(122,17,234)@7
//	rgb(23%, 5%, 100%)@10
//
// The color follows the basic data types of SVG 1.1 (Second Edition),
// section 4.2: a color keyword from section 4.4 (matched case-insensitively),
// short or long hexadecimal notation, or the functional rgb() notation with
// integer channels in [0, 255] or percentage channels in [0, 100]. The size
// is the node radius in pixels, a number in (0, 100].
//
// Parsing is the only place validation happens. Any [Style] returned without
// an error can be emitted as-is, and every notation of the same color
// resolves to the same [Color]:
//
//	a, _ := style.Parse("red@10")
//	b, _ := style.Parse("rgb(100%,0%,0%)@10")
//	a.Color == b.Color // true
//
// Errors carry [errors.ErrCodeInvalidStyle].
//
// [Random] samples styles for synthetic trees from caller-supplied candidate
// sets; pair it with [NewRand] for reproducible output.
//
// [errors.ErrCodeInvalidStyle]: github.com/matzehuels/treesvg/pkg/errors.ErrCodeInvalidStyle
package style
