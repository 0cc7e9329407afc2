package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/style"
)

// Node is one vertex of a tree: a display value, a style and an ordered list
// of children. Children are drawn left to right in slice order.
//
// Nodes are shared by reference. [Node.AddChild] stores the pointer it is
// given, so a node attached under two parents is the same node in both
// places and the last write to it wins in every render.
type Node struct {
	Value    any
	Style    style.Style
	Children []*Node
}

// Option configures a Node created by [New].
type Option func(*Node)

// WithStyle sets the node style.
func WithStyle(s style.Style) Option {
	return func(n *Node) { n.Style = s }
}

// WithChildren appends children in order.
func WithChildren(children ...*Node) Option {
	return func(n *Node) {
		for _, c := range children {
			n.AddChild(c)
		}
	}
}

// New creates a node holding value. Without [WithStyle] the node gets
// [style.Default].
func New(value any, opts ...Option) *Node {
	n := &Node{Value: value, Style: style.Default()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// AddChild appends child to the node's children. The pointer is stored as-is:
// no copy is made and nothing checks whether child already has a parent.
// Attaching an ancestor creates a cycle that [Validate] (and therefore every
// layout) rejects. A nil child is ignored.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Depth returns the depth of the tree below n: 0 for a leaf, otherwise one
// more than the deepest child. The tree must be acyclic.
func (n *Node) Depth() int {
	depth := 0
	n.Walk(func(_ *Node, d int) bool {
		depth = max(depth, d)
		return true
	})
	return depth
}

// Count returns the number of node occurrences under and including n. A
// node shared by two parents counts twice, matching what gets drawn.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// EdgeCount returns the number of parent-child connections, Count()-1.
func (n *Node) EdgeCount() int {
	return n.Count() - 1
}

// Walk visits n and its descendants in pre-order, passing each node and its
// depth relative to n. Returning false from fn skips that node's children.
// Walk uses an explicit stack, so depth is not bounded by the goroutine
// stack; the tree must be acyclic.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	type item struct {
		node  *Node
		depth int
	}
	stack := []item{{n, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.node, it.depth) {
			continue
		}
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1})
		}
	}
}

// String renders the values as an indented listing:
//
//	-
//	└── 1
//	└── *
//	    └── 5
//	    └── 4
func (n *Node) String() string {
	return n.listing(func(node *Node) string { return fmt.Sprint(node.Value) })
}

// Describe is like String but adds each node's style.
func (n *Node) Describe() string {
	return n.listing(func(node *Node) string {
		return fmt.Sprintf("%s (%s)", describeValue(node.Value), node.Style)
	})
}

func (n *Node) listing(label func(*Node) string) string {
	var b strings.Builder
	n.Walk(func(node *Node, depth int) bool {
		if depth > 0 {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("    ", depth-1))
			b.WriteString("└── ")
		}
		b.WriteString(label(node))
		return true
	})
	return b.String()
}

func describeValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}

// Validate checks that root is a usable tree: non-nil, no nil children and
// no node that is its own ancestor. Shared subtrees are allowed.
func Validate(root *Node) error {
	if root == nil {
		return errors.New(errors.ErrCodeInvalidTree, "tree has no root")
	}

	type frame struct {
		node *Node
		next int
	}
	onPath := map[*Node]bool{root: true}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.node.Children) {
			delete(onPath, top.node)
			stack = stack[:len(stack)-1]
			continue
		}
		child := top.node.Children[top.next]
		top.next++
		if child == nil {
			return errors.New(errors.ErrCodeInvalidTree, "node %v has a nil child", top.node.Value)
		}
		if onPath[child] {
			return errors.New(errors.ErrCodeInvalidTree, "node %v is its own ancestor", child.Value)
		}
		onPath[child] = true
		stack = append(stack, frame{node: child})
	}
	return nil
}
