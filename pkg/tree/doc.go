// Package tree holds the node model drawn by treesvg.
//
// A tree is built from [Node] values linked by pointers:
//
//	root := tree.New("-", tree.WithStyle(style.MustParse("red@6")))
//	mul := tree.New("*")
//	root.AddChild(tree.New(1))
//	root.AddChild(mul)
//	mul.AddChild(tree.New(5))
//
// Children are stored by reference, so mutating a node after attaching it
// changes every place it appears. The same node may be attached under
// several parents; it is then drawn once per occurrence. Attaching a node
// under one of its own descendants makes a cycle, which [Validate] reports
// and layout refuses.
//
// [Random] and [RandomSeeded] build random trees for demos and tests.
package tree
