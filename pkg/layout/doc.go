// Package layout places tree nodes on a canvas.
//
// Every strategy uses the same vertical rule: the canvas is cut into T+1
// horizontal bands of equal height, T being the tree depth, and a node at
// depth d sits in the middle of band d. Strategies differ in how a parent's
// horizontal span is shared among its children:
//
//   - [EqualSplit] gives every child the same share (the default)
//   - [Weighted] sizes each share by the number of leaves below the child
//
// A node is centered in its span, so a lone node lands on the canvas center.
//
// Layouts walk the tree with explicit work stacks and handle arbitrarily
// deep trees. A node shared by several parents is placed once per
// occurrence. Cyclic trees are rejected with INVALID_TREE before any work.
package layout
