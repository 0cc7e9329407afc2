package svg

import "github.com/matzehuels/treesvg/pkg/layout"

// Defaults used when no option overrides them.
const (
	DefaultWidth  = 400.0
	DefaultHeight = 400.0
	DefaultTitle  = "Tree graphic created with treesvg"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	width, height float64
	gradient      bool
	border        bool
	angled        bool
	strategy      layout.Strategy
	title         string
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		width:    DefaultWidth,
		height:   DefaultHeight,
		gradient: true,
		border:   true,
		strategy: layout.EqualSplit{},
		title:    DefaultTitle,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithSize sets the canvas size used by [Document] and [WriteFile].
func WithSize(width, height float64) Option {
	return func(r *renderer) { r.width, r.height = width, height }
}

// WithGradient toggles gradient strokes on edges between differently
// colored nodes. When off, every edge is black.
func WithGradient(on bool) Option { return func(r *renderer) { r.gradient = on } }

// WithBorder toggles the canvas border rectangle.
func WithBorder(on bool) Option { return func(r *renderer) { r.border = on } }

// WithAngledGradients orients each gradient along its connector line instead
// of top to bottom.
func WithAngledGradients() Option { return func(r *renderer) { r.angled = true } }

// WithStrategy selects the layout used by [Document] and [WriteFile].
func WithStrategy(s layout.Strategy) Option {
	return func(r *renderer) {
		if s != nil {
			r.strategy = s
		}
	}
}

// WithTitle replaces the document title.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }
