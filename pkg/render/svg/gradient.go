package svg

import (
	"fmt"

	svgo "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/treesvg/pkg/layout"
	"github.com/matzehuels/treesvg/pkg/style"
)

type gradient struct {
	id       string
	from, to style.Color
	// user space endpoints; only set for angled gradients
	angled         bool
	x1, y1, x2, y2 float64
}

func gradientID(from, to style.Style) string {
	return "grad_" + from.ColorID() + "_" + to.ColorID()
}

func angledID(parent, child layout.Placement) string {
	return fmt.Sprintf("%s_%d", gradientID(parent.Node.Style, child.Node.Style), child.Index)
}

// gradients collects the definitions needed by the edges of l. Fixed
// gradients are shared by every edge with the same color pair; angled ones
// are per edge.
func (r renderer) gradients(l layout.Result) []gradient {
	if !r.gradient {
		return nil
	}
	var out []gradient
	seen := make(map[string]bool)
	for _, e := range l.Edges() {
		p, c := l.Placements[e.From], l.Placements[e.To]
		ps, cs := p.Node.Style, c.Node.Style
		if ps.Color == cs.Color {
			continue
		}
		if r.angled {
			out = append(out, gradient{
				id: angledID(p, c), from: ps.Color, to: cs.Color,
				angled: true, x1: p.X, y1: p.Y, x2: c.X, y2: c.Y,
			})
			continue
		}
		id := gradientID(ps, cs)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, gradient{id: id, from: ps.Color, to: cs.Color})
	}
	return out
}

func (g gradient) emit(canvas *svgo.SVG) {
	stops := []svgo.Offcolor{
		{Offset: 0, Color: g.from.Hex(), Opacity: 1},
		{Offset: 100, Color: g.to.Hex(), Opacity: 1},
	}
	if !g.angled {
		canvas.LinearGradient(g.id, 0, 0, 0, 100, stops)
		return
	}
	d := canvas.Decimals
	// svgo only writes bounding-box percentages, which cannot follow a line
	// of zero width, so the user space form is written directly.
	fmt.Fprintf(canvas.Writer,
		"<linearGradient id=\"%s\" gradientUnits=\"userSpaceOnUse\" x1=\"%.*f\" y1=\"%.*f\" x2=\"%.*f\" y2=\"%.*f\">\n",
		g.id, d, g.x1, d, g.y1, d, g.x2, d, g.y2)
	for _, s := range stops {
		fmt.Fprintf(canvas.Writer, "<stop offset=\"%d%%\" stop-color=\"%s\" stop-opacity=\"%.2f\"/>\n", s.Offset, s.Color, s.Opacity)
	}
	fmt.Fprintln(canvas.Writer, "</linearGradient>")
}
