package treeio

import (
	"encoding/json"

	"github.com/matzehuels/treesvg/pkg/layout"
)

// LayoutDoc is the JSON form of a computed layout.
type LayoutDoc struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Depth  int          `json:"depth"`
	Nodes  []LayoutNode `json:"nodes"`
}

// LayoutNode is one placed node occurrence. Parent is the index of the
// parent in Nodes, -1 for the root.
type LayoutNode struct {
	Value  any     `json:"value"`
	Style  string  `json:"style"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	R      float64 `json:"r"`
	Depth  int     `json:"depth"`
	Parent int     `json:"parent"`
}

// ExportLayout converts a layout to its serializable form.
func ExportLayout(l layout.Result) LayoutDoc {
	doc := LayoutDoc{
		Width:  l.Width,
		Height: l.Height,
		Depth:  l.Depth,
		Nodes:  make([]LayoutNode, len(l.Placements)),
	}
	for i, p := range l.Placements {
		s := p.Node.Style
		doc.Nodes[i] = LayoutNode{
			Value:  p.Node.Value,
			Style:  s.String(),
			Color:  s.Color.Hex(),
			X:      p.X,
			Y:      p.Y,
			R:      p.R,
			Depth:  p.Depth,
			Parent: p.Parent,
		}
	}
	return doc
}

// MarshalLayout encodes a layout as indented JSON.
func MarshalLayout(l layout.Result) ([]byte, error) {
	return json.MarshalIndent(ExportLayout(l), "", "  ")
}
