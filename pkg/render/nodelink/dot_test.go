package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/style"
	"github.com/matzehuels/treesvg/pkg/tree"
)

func TestToDOT_Basic(t *testing.T) {
	root := tree.New("a", tree.WithChildren(tree.New("b"), tree.New("c", tree.WithChildren(tree.New("d")))))

	dot, err := ToDOT(root, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, want := range []string{`"n0" -> "n1"`, `"n0" -> "n2"`, `"n2" -> "n3"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing edge %s:\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "->"); got != 3 {
		t.Errorf("ToDOT() has %d edges, want 3", got)
	}
	if !strings.Contains(dot, `label="d"`) {
		t.Error("ToDOT() output missing label of d")
	}
}

func TestToDOT_Style(t *testing.T) {
	root := tree.New(7, tree.WithStyle(style.MustParse("red@36")))

	dot, err := ToDOT(root, Options{Detailed: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`fillcolor="#ff0000"`, `width=1.000`, `label="7\nred@36"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s:\n%s", want, dot)
		}
	}
}

func TestToDOT_Shared(t *testing.T) {
	shared := tree.New("s")
	root := tree.New("r", tree.WithChildren(shared, tree.New("x", tree.WithChildren(shared))))

	dot, err := ToDOT(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(dot, `label="s"`); got != 2 {
		t.Errorf("shared node emitted %d times, want 2", got)
	}
	if !strings.Contains(dot, `"n2" -> "n3"`) {
		t.Errorf("missing edge to second occurrence:\n%s", dot)
	}
}

func TestToDOT_LabelEscaping(t *testing.T) {
	root := tree.New(`say "hi" \ ok`, tree.WithChildren(tree.New("日本\u200b語")))

	dot, err := ToDOT(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`label="say \"hi\" \\ ok"`, "label=\"日本\u200b語\""} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `\u`) || strings.Contains(dot, `\x`) {
		t.Errorf("ToDOT() wrote Go-style escapes:\n%s", dot)
	}
}

func TestToDOT_Cycle(t *testing.T) {
	a := tree.New("a")
	a.Children = append(a.Children, a)
	if _, err := ToDOT(a, Options{}); !errors.Is(err, errors.ErrCodeInvalidTree) {
		t.Errorf("ToDOT(cycle) = %v, want INVALID_TREE", err)
	}
}

func TestFmtLabel(t *testing.T) {
	n := tree.New("v", tree.WithStyle(style.MustParse("#abc@4")))
	if got := fmtLabel(n, false); got != "v" {
		t.Errorf("fmtLabel(simple) = %q, want %q", got, "v")
	}
	if got := fmtLabel(n, true); got != "v\n#abc@4" {
		t.Errorf("fmtLabel(detailed) = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 116.00" width="62" height="116"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
