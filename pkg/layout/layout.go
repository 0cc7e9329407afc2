package layout

import (
	"math"

	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/tree"
)

// Canvas bounds, inclusive, applied to both axes.
const (
	MinCanvas = 10.0
	MaxCanvas = 10000.0
)

// Strategy computes node positions for a tree on a width x height canvas.
type Strategy interface {
	Name() string
	Layout(root *tree.Node, width, height float64) (Result, error)
}

// Placement is one drawn occurrence of a node.
type Placement struct {
	Node   *tree.Node
	Depth  int
	Index  int // position in Result.Placements
	Parent int // index of the parent placement, -1 for the root
	X, Y   float64
	R      float64 // node size at layout time
}

// Edge connects two placements by index.
type Edge struct {
	From, To int
}

// Result is a computed layout. Placements are in pre-order, so a parent
// always precedes its children and siblings keep their order.
type Result struct {
	Width, Height float64
	Depth         int
	Placements    []Placement
}

// Edges returns the parent-child connections in placement order.
func (r Result) Edges() []Edge {
	if len(r.Placements) == 0 {
		return nil
	}
	edges := make([]Edge, 0, len(r.Placements)-1)
	for _, p := range r.Placements {
		if p.Parent >= 0 {
			edges = append(edges, Edge{From: p.Parent, To: p.Index})
		}
	}
	return edges
}

// Children returns the placements directly below p, in order.
func (r Result) Children(p Placement) []Placement {
	var kids []Placement
	for _, q := range r.Placements[p.Index+1:] {
		if q.Parent == p.Index {
			kids = append(kids, q)
		}
	}
	return kids
}

// MapValue linearly maps x from [a, b] onto [c, d].
func MapValue(x, a, b, c, d float64) (float64, error) {
	if a == b || c == d {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cannot map onto or from an empty interval")
	}
	return c + (x-a)*(d-c)/(b-a), nil
}

// ValidateCanvas checks that both dimensions are within [MinCanvas, MaxCanvas].
func ValidateCanvas(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || v < MinCanvas || v > MaxCanvas {
			return errors.New(errors.ErrCodeInvalidCanvas,
				"canvas %vx%v out of range, both sides must be within [%v, %v]", width, height, MinCanvas, MaxCanvas)
		}
	}
	return nil
}

// ByName resolves a strategy name. The empty name selects [EqualSplit].
func ByName(name string) (Strategy, error) {
	switch name {
	case "", EqualSplit{}.Name():
		return EqualSplit{}, nil
	case Weighted{}.Name():
		return Weighted{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown layout %q (available: %v)", name, Names())
}

// Names lists the strategies known to [ByName].
func Names() []string {
	return []string{EqualSplit{}.Name(), Weighted{}.Name()}
}

// shareFunc returns the fraction of a parent's span given to each child.
type shareFunc func(parent *tree.Node) []float64

// place is the engine behind every strategy: bands by depth, spans by share.
func place(root *tree.Node, width, height float64, share shareFunc) (Result, error) {
	if err := ValidateCanvas(width, height); err != nil {
		return Result{}, err
	}
	if err := tree.Validate(root); err != nil {
		return Result{}, err
	}

	depth := root.Depth()
	res := Result{Width: width, Height: height, Depth: depth}

	type item struct {
		node   *tree.Node
		x0, w  float64
		depth  int
		parent int
	}
	stack := []item{{node: root, x0: 0, w: width, parent: -1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		y, err := MapValue(float64(it.depth), -0.5, float64(depth)+0.5, 0, height)
		if err != nil {
			return Result{}, err
		}
		idx := len(res.Placements)
		res.Placements = append(res.Placements, Placement{
			Node:   it.node,
			Depth:  it.depth,
			Index:  idx,
			Parent: it.parent,
			X:      it.x0 + it.w/2,
			Y:      y,
			R:      it.node.Style.Size,
		})

		if it.node.IsLeaf() {
			continue
		}
		fractions := share(it.node)
		spans := make([]item, len(it.node.Children))
		x := it.x0
		for i, child := range it.node.Children {
			w := it.w * fractions[i]
			spans[i] = item{node: child, x0: x, w: w, depth: it.depth + 1, parent: idx}
			x += w
		}
		for i := len(spans) - 1; i >= 0; i-- {
			stack = append(stack, spans[i])
		}
	}
	return res, nil
}
