package svg

import (
	"bytes"
	"fmt"
	"strconv"

	svgo "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/treesvg/pkg/layout"
	"github.com/matzehuels/treesvg/pkg/tree"
)

const (
	strokeWidth = `stroke-width="2"`
	borderStyle = "stroke:#000000;fill:none"
	plainStroke = "#000000"
)

// Render emits the document for a computed layout. The canvas size is the
// layout's; node styles are read from the nodes at call time.
//
// Coordinates and radii are written with two decimals. The root element
// carries the canvas size as given.
func Render(l layout.Result, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	canvas.Startraw(fmt.Sprintf(`width="%s" height="%s"`, num(l.Width), num(l.Height)))
	canvas.Title(r.title)

	grads := r.gradients(l)
	if len(grads) > 0 {
		canvas.Def()
		for _, g := range grads {
			g.emit(canvas)
		}
		canvas.DefEnd()
	}

	if r.border {
		canvas.Rect(0, 0, l.Width, l.Height, borderStyle)
	}

	children := childIndex(l)
	for _, p := range l.Placements {
		canvas.Gid(fmt.Sprintf("node-%d", p.Index))
		canvas.Desc(fmt.Sprint(p.Node.Value))
		for _, ci := range children[p.Index] {
			c := l.Placements[ci]
			canvas.Line(p.X, p.Y, c.X, c.Y,
				fmt.Sprintf(`stroke="%s"`, r.stroke(p, c)), strokeWidth)
		}
		canvas.Circle(p.X, p.Y, p.Node.Style.Size,
			fmt.Sprintf(`fill="%s"`, p.Node.Style.Color.Hex()))
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

// Document lays out root with the configured strategy and size and renders
// the result.
func Document(root *tree.Node, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	l, err := r.strategy.Layout(root, r.width, r.height)
	if err != nil {
		return nil, err
	}
	return Render(l, opts...), nil
}

func (r renderer) stroke(parent, child layout.Placement) string {
	ps, cs := parent.Node.Style, child.Node.Style
	switch {
	case !r.gradient:
		return plainStroke
	case ps.Color == cs.Color:
		return ps.Color.Hex()
	case r.angled:
		return "url(#" + angledID(parent, child) + ")"
	default:
		return "url(#" + gradientID(ps, cs) + ")"
	}
}

func childIndex(l layout.Result) [][]int {
	kids := make([][]int, len(l.Placements))
	for _, e := range l.Edges() {
		kids[e.From] = append(kids[e.From], e.To)
	}
	return kids
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
