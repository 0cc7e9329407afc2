package treeio

import (
	"fmt"

	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/style"
	"github.com/matzehuels/treesvg/pkg/tree"
)

// Document is the serialized form of a tree node.
type Document struct {
	Value    any        `json:"value" toml:"value" yaml:"value"`
	Style    string     `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty"`
	Children []Document `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

// Tree builds the node tree described by d.
func (d *Document) Tree() (*tree.Node, error) {
	root, err := d.node("root")
	if err != nil {
		return nil, err
	}

	type item struct {
		doc  *Document
		node *tree.Node
		path string
	}
	stack := []item{{d, root, "root"}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := range it.doc.Children {
			child := &it.doc.Children[i]
			path := fmt.Sprintf("%s.children[%d]", it.path, i)
			n, err := child.node(path)
			if err != nil {
				return nil, err
			}
			it.node.AddChild(n)
			stack = append(stack, item{child, n, path})
		}
	}
	return root, nil
}

func (d *Document) node(path string) (*tree.Node, error) {
	if d.Style == "" {
		return tree.New(d.Value), nil
	}
	s, err := style.Parse(d.Style)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "node %s", path)
	}
	return tree.New(d.Value, tree.WithStyle(s)), nil
}

// FromTree converts a tree to its document form.
func FromTree(root *tree.Node) (Document, error) {
	if err := tree.Validate(root); err != nil {
		return Document{}, err
	}

	type item struct {
		node *tree.Node
		doc  *Document
	}
	var out Document
	stack := []item{{root, &out}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		it.doc.Value = it.node.Value
		it.doc.Style = it.node.Style.String()
		if it.node.IsLeaf() {
			continue
		}
		it.doc.Children = make([]Document, len(it.node.Children))
		for i, c := range it.node.Children {
			stack = append(stack, item{c, &it.doc.Children[i]})
		}
	}
	return out, nil
}
