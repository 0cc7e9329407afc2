// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the HTTP service.
//
// # Stages
//
//  1. Load: read a tree document or generate a random tree
//  2. Layout: place the nodes on the canvas
//  3. Render: produce each requested format (svg, png, pdf, dot, nodelink, json)
//
// Rendered artifacts are cached per format, keyed by the tree content and
// every option that affects the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg", "json"}}
//	root, err := runner.Load(ctx, pipeline.Source{Path: "tree.json"})
//	result, err := runner.Execute(ctx, root, opts)
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treesvg/pkg/cache"
	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/layout"
	"github.com/matzehuels/treesvg/pkg/render/svg"
	"github.com/matzehuels/treesvg/pkg/tree"
)

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = svg.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = svg.DefaultHeight

	// DefaultLayout is the default layout strategy.
	DefaultLayout = "equal"

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
	FormatJSON     = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatDOT:      true,
	FormatNodelink: true,
	FormatJSON:     true,
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	switch format {
	case FormatNodelink:
		return "nodelink.svg"
	case FormatJSON:
		return "layout.json"
	}
	return format
}

// Options configures layout and rendering. The zero value renders a
// 400x400 SVG with gradients and border.
type Options struct {
	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Layout string  `json:"layout,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	NoGradient bool     `json:"no_gradient,omitempty"`
	NoBorder   bool     `json:"no_border,omitempty"`
	Angled     bool     `json:"angled,omitempty"`
	Title      string   `json:"title,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // style under each DOT label

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Source selects where [Runner.Load] gets a tree. Exactly one of Path,
// Document and Random must be set.
type Source struct {
	// Path is a tree document file (.json, .toml, .yaml, .yml).
	Path string
	// Document is an encoded tree document in Format.
	Document []byte
	Format   string
	// Random generates a tree from Seed.
	Random *tree.RandomOptions
	Seed   uint64
}

// Kind names the source for logs and hooks.
func (s Source) Kind() string {
	switch {
	case s.Random != nil:
		return "random"
	case s.Document != nil:
		return "document"
	default:
		return "file"
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the rendered tree.
	Tree *tree.Node

	// TreeHash is the content hash of the tree document.
	TreeHash string

	// Layout is the computed node placement.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which formats came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Depth      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	Hits      []string // formats served from cache
	RenderHit bool     // whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, nodelink, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLayout checks that a layout strategy name is known.
func ValidateLayout(name string) error {
	_, err := layout.ByName(name)
	return err
}

// ParseFormats parses a comma-separated format list. Empty input selects svg.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// SetDefaults fills zero-valued fields with defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate sets defaults and checks every option.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := layout.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if err := ValidateLayout(o.Layout); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// Strategy resolves the layout strategy.
func (o *Options) Strategy() (layout.Strategy, error) {
	return layout.ByName(o.Layout)
}

// SVGOptions translates the render options for the svg package.
func (o *Options) SVGOptions() []svg.Option {
	opts := []svg.Option{
		svg.WithSize(o.Width, o.Height),
		svg.WithGradient(!o.NoGradient),
		svg.WithBorder(!o.NoBorder),
	}
	if o.Angled {
		opts = append(opts, svg.WithAngledGradients())
	}
	if o.Title != "" {
		opts = append(opts, svg.WithTitle(o.Title))
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:   format,
		Width:    o.Width,
		Height:   o.Height,
		Layout:   o.Layout,
		Gradient: !o.NoGradient,
		Border:   !o.NoBorder,
		Angled:   o.Angled,
		Title:    o.Title,
	}
	switch format {
	case FormatPNG:
		opts.Format += "@" + strconv.FormatFloat(o.Scale, 'f', -1, 64)
	case FormatDOT, FormatNodelink:
		if o.Detailed {
			opts.Format += "+detailed"
		}
	}
	return opts
}
