package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/style"
)

func TestRandomDepthBound(t *testing.T) {
	for _, maxDepth := range []int{0, 1, 3, 5} {
		for seed := uint64(0); seed < 25; seed++ {
			opts := DefaultRandomOptions()
			opts.MaxDepth = maxDepth
			root, err := RandomSeeded(seed, opts)
			if err != nil {
				t.Fatalf("RandomSeeded(%d) error: %v", seed, err)
			}
			if got := root.Depth(); got > maxDepth {
				t.Errorf("seed %d: Depth() = %d, exceeds %d", seed, got, maxDepth)
			}
		}
	}
}

func TestRandomNegativeDepth(t *testing.T) {
	root, err := RandomSeeded(1, RandomOptions{MaxDepth: -1})
	if err != nil || root != nil {
		t.Errorf("RandomSeeded(depth -1) = %v, %v; want nil, nil", root, err)
	}
}

func TestRandomReproducible(t *testing.T) {
	opts := DefaultRandomOptions()
	a, err := RandomSeeded(42, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RandomSeeded(42, opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different trees (-a +b):\n%s", diff)
	}
}

func TestRandomCandidates(t *testing.T) {
	opts := RandomOptions{
		MaxDepth: 3,
		Children: []int{2},
		Values:   []any{"v"},
		Sizes:    []float64{7},
		Colors:   []string{"green", "#f00"},
	}
	root, err := RandomSeeded(7, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := root.Count(); got != 15 {
		t.Errorf("Count() = %d, want full binary tree of 15", got)
	}
	root.Walk(func(n *Node, _ int) bool {
		if n.Value != "v" {
			t.Errorf("value %v not from candidates", n.Value)
		}
		if n.Style.Size != 7 {
			t.Errorf("size %v not from candidates", n.Style.Size)
		}
		if n.Style.Source != "green" && n.Style.Source != "#f00" {
			t.Errorf("color %q not from candidates", n.Style.Source)
		}
		return true
	})
}

func TestRandomSingleton(t *testing.T) {
	root, err := RandomSeeded(3, RandomOptions{MaxDepth: 4, Children: []int{0}})
	if err != nil {
		t.Fatal(err)
	}
	if !root.IsLeaf() {
		t.Errorf("root has %d children, want 0", len(root.Children))
	}
}

func TestRandomCatalog(t *testing.T) {
	root, err := RandomSeeded(9, RandomOptions{MaxDepth: 2, UseCatalog: true})
	if err != nil {
		t.Fatal(err)
	}
	root.Walk(func(n *Node, _ int) bool {
		if !style.IsNamed(n.Style.Source) {
			t.Errorf("color %q is not a named color", n.Style.Source)
		}
		return true
	})
}

func TestRandomInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts RandomOptions
		code errors.Code
	}{
		{"negative children", RandomOptions{MaxDepth: 2, Children: []int{-1}}, errors.ErrCodeInvalidInput},
		{"bad color", RandomOptions{MaxDepth: 1, Colors: []string{"notacolor"}}, errors.ErrCodeInvalidStyle},
		{"bad size", RandomOptions{MaxDepth: 1, Sizes: []float64{0}}, errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RandomSeeded(1, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("RandomSeeded() = %v, want %s", err, tt.code)
			}
		})
	}
}
