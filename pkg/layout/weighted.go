package layout

import "github.com/matzehuels/treesvg/pkg/tree"

// Weighted sizes each child's span by the number of leaves below it, so
// bushy subtrees get more room and the bottom row is evenly spaced.
type Weighted struct{}

// Name implements [Strategy].
func (Weighted) Name() string { return "weighted" }

// Layout implements [Strategy].
func (Weighted) Layout(root *tree.Node, width, height float64) (Result, error) {
	if err := tree.Validate(root); err != nil {
		return Result{}, err
	}
	leaves := LeafCounts(root)
	return place(root, width, height, func(parent *tree.Node) []float64 {
		fractions := make([]float64, len(parent.Children))
		total := float64(leaves[parent])
		for i, child := range parent.Children {
			fractions[i] = float64(leaves[child]) / total
		}
		return fractions
	})
}

// LeafCounts returns, for every node under root, the number of leaf
// occurrences below it (1 for a leaf). The tree must be acyclic.
func LeafCounts(root *tree.Node) map[*tree.Node]int {
	counts := make(map[*tree.Node]int)
	type frame struct {
		node *tree.Node
		next int
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.Children) {
			child := top.node.Children[top.next]
			top.next++
			if _, done := counts[child]; !done {
				stack = append(stack, frame{node: child})
			}
			continue
		}
		n := top.node
		stack = stack[:len(stack)-1]
		if n.IsLeaf() {
			counts[n] = 1
			continue
		}
		sum := 0
		for _, c := range n.Children {
			sum += counts[c]
		}
		counts[n] = sum
	}
	return counts
}
