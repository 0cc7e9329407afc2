package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/tree"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the style descriptor under each value.
	Detailed bool
}

// Graphviz sizes nodes in inches at 72 dpi.
const inchPerPx = 1.0 / 72

// ToDOT converts a tree to Graphviz DOT. Node ids are pre-order occurrence
// indices (n0 is the root); a node shared by two parents appears twice.
func ToDOT(root *tree.Node, opts Options) (string, error) {
	if err := tree.Validate(root); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=false, fontsize=10];\n")
	buf.WriteString("  edge [arrowhead=none, penwidth=2];\n")
	buf.WriteString("\n")

	var edges []string
	var last []int // last occurrence index seen at each depth
	idx := 0
	root.Walk(func(n *tree.Node, depth int) bool {
		if depth < len(last) {
			last = last[:depth]
		}
		last = append(last, idx)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(idx), strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		if depth > 0 {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", nodeID(last[depth-1]), nodeID(idx)))
		}
		idx++
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeID(i int) string { return "n" + strconv.Itoa(i) }

func fmtLabel(n *tree.Node, detailed bool) string {
	label := fmt.Sprint(n.Value)
	if detailed {
		label += "\n" + n.Style.String()
	}
	return label
}

// dotEscaper escapes a DOT quoted string. Text stays UTF-8; a newline
// becomes the \n line break escape.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func fmtAttrs(n *tree.Node, detailed bool) []string {
	diameter := 2 * n.Style.Size * inchPerPx
	return []string{
		"label=" + quote(fmtLabel(n, detailed)),
		fmt.Sprintf("fillcolor=%q", n.Style.Color.Hex()),
		fmt.Sprintf("width=%.3f", diameter),
		fmt.Sprintf("height=%.3f", diameter),
	}
}

// RenderSVG renders DOT source to SVG with Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
