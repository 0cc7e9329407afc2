package layout

import "github.com/matzehuels/treesvg/pkg/tree"

// EqualSplit divides a parent's span evenly among its children. Child i of n
// in span [x0, x0+w) gets [x0+i*w/n, x0+(i+1)*w/n).
type EqualSplit struct{}

// Name implements [Strategy].
func (EqualSplit) Name() string { return "equal" }

// Layout implements [Strategy].
func (EqualSplit) Layout(root *tree.Node, width, height float64) (Result, error) {
	return place(root, width, height, func(parent *tree.Node) []float64 {
		n := len(parent.Children)
		fractions := make([]float64, n)
		for i := range fractions {
			fractions[i] = 1 / float64(n)
		}
		return fractions
	})
}
