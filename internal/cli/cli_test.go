package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/treesvg/pkg/errors"
)

const sampleDoc = `{"value": "-", "style": "red@6", "children": [
	{"value": 1, "style": "green@9"},
	{"value": "*", "children": [{"value": 5}, {"value": 4}]}
]}`

// setup isolates config and cache directories and silences status output.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	old := stdout
	stdout = io.Discard
	t.Cleanup(func() { stdout = old })
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join("/tmp/xdg", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "trees/expr.json", "trees/expr"},
		{"", "expr.yaml", "expr"},
		{"out.svg", "expr.json", "out"},
		{"out.nodelink.svg", "expr.json", "out"},
		{"out.layout.json", "expr.json", "out"},
		{"out", "expr.json", "out"},
		{"out.txt", "expr.json", "out.txt"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"single explicit", "pic.svg", []string{"svg"}, map[string]string{"svg": "pic.svg"}},
		{"single derived", "", []string{"png"}, map[string]string{"png": "base.png"}},
		{
			"multiple",
			"",
			[]string{"svg", "json", "nodelink"},
			map[string]string{"svg": "base.svg", "json": "base.layout.json", "nodelink": "base.nodelink.svg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "base", tt.formats)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("outputPaths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseValues(t *testing.T) {
	got := parseValues([]string{"1", "+", "-3", "x1"})
	want := []any{1, "+", -3, "x1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseValues mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := setup(t)
	input := filepath.Join(dir, "expr.json")
	writeFile(t, input, sampleDoc)

	if _, err := run(t, "render", input, "-f", "svg,json,dot"); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg := readFile(t, filepath.Join(dir, "expr.svg"))
	if n := strings.Count(svg, "<circle"); n != 5 {
		t.Errorf("circles = %d, want 5", n)
	}
	if !strings.Contains(readFile(t, filepath.Join(dir, "expr.layout.json")), `"nodes"`) {
		t.Error("layout json missing nodes")
	}
	if !strings.HasPrefix(readFile(t, filepath.Join(dir, "expr.dot")), "digraph") {
		t.Error("dot output should start with digraph")
	}
}

func TestRenderCommandFlags(t *testing.T) {
	dir := setup(t)
	input := filepath.Join(dir, "expr.toml")
	writeFile(t, input, "value = \"root\"\n\n[[children]]\nvalue = 1\n\n[[children]]\nvalue = 2\n")
	out := filepath.Join(dir, "pic.svg")

	if _, err := run(t, "render", input, "-o", out, "--width", "300", "--height", "200", "--border=false", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	svg := readFile(t, out)
	if !strings.Contains(svg, `width="300" height="200"`) {
		t.Error("canvas flags not applied")
	}
	if strings.Contains(svg, "<rect") {
		t.Error("--border=false should drop the rect")
	}
}

func TestRenderCommandStdout(t *testing.T) {
	dir := setup(t)
	input := filepath.Join(dir, "expr.json")
	writeFile(t, input, sampleDoc)

	out, err := run(t, "render", input, "-o", "-", "-f", "dot")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "digraph") {
		t.Errorf("stdout = %.40q", out)
	}

	if _, err := run(t, "render", input, "-o", "-", "-f", "svg,dot"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("stdout with two formats: err = %v, want INVALID_INPUT", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := setup(t)
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{"value": 1, "style": "blu@3"}`)
	good := filepath.Join(dir, "good.json")
	writeFile(t, good, sampleDoc)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad style", []string{"render", bad}, errors.ErrCodeInvalidStyle},
		{"missing file", []string{"render", filepath.Join(dir, "none.json")}, errors.ErrCodeNotFound},
		{"unknown extension", []string{"render", filepath.Join(dir, "tree.xml")}, errors.ErrCodeInvalidFormat},
		{"bad format", []string{"render", good, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"tiny canvas", []string{"render", good, "--width", "3"}, errors.ErrCodeInvalidCanvas},
		{"bad layout", []string{"render", good, "--layout", "radial"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.svg")); !os.IsNotExist(err) {
		t.Error("failed render should not leave an output file")
	}
}

func TestConfigFileDefaults(t *testing.T) {
	dir := setup(t)
	input := filepath.Join(dir, "expr.json")
	writeFile(t, input, sampleDoc)
	cfg := filepath.Join(dir, "treesvg.toml")
	writeFile(t, cfg, "[canvas]\nwidth = 640\n\n[render]\nborder = false\n")

	if _, err := run(t, "--config", cfg, "render", input); err != nil {
		t.Fatalf("render: %v", err)
	}
	svg := readFile(t, filepath.Join(dir, "expr.svg"))
	if !strings.Contains(svg, `width="640" height="400"`) {
		t.Error("config width not applied")
	}
	if strings.Contains(svg, "<rect") {
		t.Error("config border=false not applied")
	}

	// Flags win over the file.
	if _, err := run(t, "--config", cfg, "render", input, "--width", "500"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if svg := readFile(t, filepath.Join(dir, "expr.svg")); !strings.Contains(svg, `width="500"`) {
		t.Error("flag should override config")
	}

	writeFile(t, cfg, "[canvas]\nwidth = \"wide\"\n")
	if _, err := run(t, "--config", cfg, "render", input); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad config: err = %v, want INVALID_INPUT", err)
	}
}

func TestRandomCommand(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "r.svg")
	saved := filepath.Join(dir, "r.yaml")

	_, err := run(t, "random", "--seed", "3", "--max-depth", "3", "--children", "1,2", "-o", out, "--save", saved)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	first := readFile(t, out)

	// Same seed, same picture.
	again := filepath.Join(dir, "again.svg")
	if _, err := run(t, "random", "--seed", "3", "--max-depth", "3", "--children", "1,2", "-o", again); err != nil {
		t.Fatalf("random: %v", err)
	}
	if readFile(t, again) != first {
		t.Error("same seed should produce the same svg")
	}

	// The saved document renders to the same picture.
	rerendered := filepath.Join(dir, "rerendered.svg")
	if _, err := run(t, "render", saved, "-o", rerendered); err != nil {
		t.Fatalf("render saved: %v", err)
	}
	if readFile(t, rerendered) != first {
		t.Error("saved document should render like the generated tree")
	}
}

func TestRandomCommandPrint(t *testing.T) {
	setup(t)

	out, err := run(t, "random", "--seed", "1", "--max-depth", "0", "--values", "x", "--colors", "red", "--sizes", "7", "--print", "-o", "-", "-f", "dot")
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if !strings.HasPrefix(out, "\"x\" (red@7)\n") {
		t.Errorf("output = %.60q", out)
	}
}

func TestStyleCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "style", "red@10", "#00f@3")
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	for _, want := range []string{"red@10", "#ff0000", "rgb(0,0,255)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "style", "red@10", "blu@3")
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("err = %v, want INVALID_STYLE", err)
	}
	if !strings.Contains(out, "#ff0000") {
		t.Error("valid descriptors should still be listed")
	}

	out, err = run(t, "style", "--list")
	if err != nil {
		t.Fatalf("style --list: %v", err)
	}
	if !strings.Contains(out, "\nred\n") {
		t.Error("--list should include red")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := setup(t)
	input := filepath.Join(dir, "expr.json")
	writeFile(t, input, sampleDoc)

	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	cache := filepath.Join(dir, "cache", appName)
	if strings.TrimSpace(out) != cache {
		t.Errorf("cache path = %q, want %q", out, cache)
	}

	if _, err := run(t, "render", input, "-f", "svg,json"); err != nil {
		t.Fatal(err)
	}
	if n := countFiles(t, cache); n != 2 {
		t.Errorf("cached files = %d, want 2", n)
	}

	if _, err := run(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if n := countFiles(t, cache); n != 0 {
		t.Errorf("cached files after clear = %d, want 0", n)
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCompletionCommand(t *testing.T) {
	setup(t)
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "treesvg") {
		t.Error("bash completion should mention the command name")
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}
