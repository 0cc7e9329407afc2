package tree

import (
	"strings"
	"testing"

	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/style"
)

func sample() *Node {
	mul := New("*", WithStyle(style.MustParse("rgb(122,17,234)@7")),
		WithChildren(New(5), New(4)))
	return New("-", WithStyle(style.MustParse("red@6")),
		WithChildren(New(1), mul))
}

func TestNewDefaults(t *testing.T) {
	n := New(3)
	if n.Value != 3 {
		t.Errorf("Value = %v, want 3", n.Value)
	}
	if n.Style != style.Default() {
		t.Errorf("Style = %v, want %v", n.Style, style.Default())
	}
	if !n.IsLeaf() {
		t.Error("new node should be a leaf")
	}
}

func TestShape(t *testing.T) {
	root := sample()
	if got := root.Depth(); got != 2 {
		t.Errorf("Depth() = %d, want 2", got)
	}
	if got := root.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
	if got := root.EdgeCount(); got != 4 {
		t.Errorf("EdgeCount() = %d, want 4", got)
	}
	if got := New(0).Depth(); got != 0 {
		t.Errorf("leaf Depth() = %d, want 0", got)
	}
}

func TestAddChildNil(t *testing.T) {
	n := New(0)
	n.AddChild(nil)
	if !n.IsLeaf() {
		t.Error("nil child should be ignored")
	}
}

func TestWalkOrder(t *testing.T) {
	var got []string
	sample().Walk(func(n *Node, depth int) bool {
		got = append(got, strings.Repeat(">", depth)+toString(n.Value))
		return true
	})
	want := "- >1 >* >>5 >>4"
	if s := strings.Join(got, " "); s != want {
		t.Errorf("Walk order = %q, want %q", s, want)
	}
}

func TestWalkSkip(t *testing.T) {
	count := 0
	sample().Walk(func(n *Node, depth int) bool {
		count++
		return n.Value != "*"
	})
	if count != 3 {
		t.Errorf("visited %d nodes, want 3", count)
	}
}

func TestString(t *testing.T) {
	want := "-\n└── 1\n└── *\n    └── 5\n    └── 4"
	if got := sample().String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestDescribe(t *testing.T) {
	got := sample().Describe()
	for _, want := range []string{`"-" (red@6)`, `└── 1 (blue@12)`, `"*" (rgb(122,17,234)@7)`} {
		if !strings.Contains(got, want) {
			t.Errorf("Describe() missing %q:\n%s", want, got)
		}
	}
}

func TestSharedChild(t *testing.T) {
	shared := New("x", WithStyle(style.MustParse("green@4")))
	root := New("r", WithChildren(New("a", WithChildren(shared)), New("b", WithChildren(shared))))

	shared.Style = style.MustParse("purple@9")
	shared.Value = "y"

	if got := root.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
	if err := Validate(root); err != nil {
		t.Errorf("Validate() = %v, want nil for shared subtree", err)
	}
	if got := strings.Count(root.String(), "y"); got != 2 {
		t.Errorf("mutated value appears %d times, want 2", got)
	}
	for _, parent := range root.Children {
		if parent.Children[0].Style.Source != "purple" {
			t.Errorf("child of %v has style %v, want purple", parent.Value, parent.Children[0].Style)
		}
	}
}

func TestValidate(t *testing.T) {
	selfLoop := New("a")
	selfLoop.Children = append(selfLoop.Children, selfLoop)

	a, b := New("a"), New("b")
	a.AddChild(b)
	b.AddChild(a)

	withNil := New("n")
	withNil.Children = []*Node{nil}

	tests := []struct {
		name string
		root *Node
		ok   bool
	}{
		{"single", New(1), true},
		{"sample", sample(), true},
		{"nil root", nil, false},
		{"self loop", selfLoop, false},
		{"two cycle", a, false},
		{"nil child", withNil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.root)
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidTree) {
				t.Fatalf("Validate() = %v, want INVALID_TREE", err)
			}
		})
	}
}

func TestDeepChain(t *testing.T) {
	const depth = 100000
	root := New(0)
	cur := root
	for i := 1; i <= depth; i++ {
		next := New(i)
		cur.AddChild(next)
		cur = next
	}
	if err := Validate(root); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got := root.Depth(); got != depth {
		t.Errorf("Depth() = %d, want %d", got, depth)
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return describeValue(v)
}
