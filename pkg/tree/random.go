package tree

import (
	"math/rand/v2"

	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/style"
)

// RandomOptions controls [Random]. Empty candidate slices fall back to the
// defaults of [DefaultRandomOptions]; MaxDepth is always used as given.
type RandomOptions struct {
	// MaxDepth bounds the depth of the generated tree. A negative value
	// produces no tree.
	MaxDepth int
	// Children lists the possible child counts of an inner node.
	Children []int
	// Values lists the possible node values.
	Values []any
	// Sizes lists the possible node sizes.
	Sizes []float64
	// Colors lists the possible color tokens. When empty, colors are drawn
	// from the whole RGB spectrum, or from the named catalog if UseCatalog
	// is set.
	Colors     []string
	UseCatalog bool
}

// DefaultRandomOptions returns depth 5, 0..4 children, values 0..9, sizes
// 5..20 and spectrum colors.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{
		MaxDepth: 5,
		Children: []int{0, 1, 2, 3, 4},
		Values:   []any{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		Sizes:    append([]float64(nil), style.DefaultSizes...),
	}
}

func (o RandomOptions) withDefaults() RandomOptions {
	d := DefaultRandomOptions()
	if len(o.Children) == 0 {
		o.Children = d.Children
	}
	if len(o.Values) == 0 {
		o.Values = d.Values
	}
	if len(o.Sizes) == 0 {
		o.Sizes = d.Sizes
	}
	return o
}

// Random generates a tree by sampling every node's value, style and child
// count uniformly from the candidate sets. Nodes at depth MaxDepth get no
// children, so the result never exceeds it. A negative MaxDepth returns nil.
//
// Draws happen in pre-order, so the same rng state and options always give
// the same tree.
func Random(rng *rand.Rand, opts RandomOptions) (*Node, error) {
	if opts.MaxDepth < 0 {
		return nil, nil
	}
	opts = opts.withDefaults()
	for _, c := range opts.Children {
		if c < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "negative child count %d", c)
		}
	}

	g := generator{rng: rng, opts: opts}
	root, err := g.node()
	if err != nil {
		return nil, err
	}

	type frame struct {
		node      *Node
		depth     int
		remaining int
	}
	stack := []frame{{root, 0, g.childCount(0)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.remaining == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		top.remaining--
		child, err := g.node()
		if err != nil {
			return nil, err
		}
		top.node.AddChild(child)
		depth := top.depth + 1
		stack = append(stack, frame{child, depth, g.childCount(depth)})
	}
	return root, nil
}

// RandomSeeded is Random with a fresh source for seed.
func RandomSeeded(seed uint64, opts RandomOptions) (*Node, error) {
	return Random(style.NewRand(seed), opts)
}

type generator struct {
	rng  *rand.Rand
	opts RandomOptions
}

func (g generator) node() (*Node, error) {
	value := g.opts.Values[g.rng.IntN(len(g.opts.Values))]
	colors := g.opts.Colors
	if len(colors) == 0 && !g.opts.UseCatalog {
		colors = []string{style.RandomRGB(g.rng)}
	}
	s, err := style.Random(g.rng, colors, g.opts.Sizes)
	if err != nil {
		return nil, err
	}
	return New(value, WithStyle(s)), nil
}

func (g generator) childCount(depth int) int {
	if depth >= g.opts.MaxDepth {
		return 0
	}
	return g.opts.Children[g.rng.IntN(len(g.opts.Children))]
}
