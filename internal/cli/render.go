package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treesvg/internal/config"
	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/pipeline"
	"github.com/matzehuels/treesvg/pkg/render/svg"
	"github.com/matzehuels/treesvg/pkg/tree"
)

// stdoutPath writes the single requested format to standard output.
const stdoutPath = "-"

// renderFlags holds the flags shared by render and random.
type renderFlags struct {
	output   string  // output file (single format) or base path (multiple)
	formats  string  // comma-separated formats
	width    float64 // canvas width in pixels
	height   float64 // canvas height in pixels
	layout   string  // layout strategy: equal, weighted
	gradient bool    // gradient connectors
	border   bool    // canvas border
	angled   bool    // gradients follow the connector direction
	title    string  // SVG <title>
	scale    float64 // PNG scale factor
	detailed bool    // styles in DOT labels
	noCache  bool    // bypass the artifact cache
}

func (f *renderFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot, nodelink, json (comma-separated)")
	fl.Float64Var(&f.width, "width", d.Canvas.Width, "canvas width in pixels")
	fl.Float64Var(&f.height, "height", d.Canvas.Height, "canvas height in pixels")
	fl.StringVar(&f.layout, "layout", d.Canvas.Layout, "layout strategy: equal, weighted")
	fl.BoolVar(&f.gradient, "gradient", d.Render.Gradient, "color connectors with a gradient between parent and child")
	fl.BoolVar(&f.border, "border", d.Render.Border, "draw a border around the canvas")
	fl.BoolVar(&f.angled, "angled", d.Render.Angled, "orient gradients along each connector")
	fl.StringVar(&f.title, "title", "", "document title")
	fl.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fl.BoolVar(&f.detailed, "detailed", false, "include styles in dot and nodelink labels")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
}

// options merges the flags over cfg: a flag the user did not set takes the
// config file value.
func (f *renderFlags) options(cmd *cobra.Command, cfg config.Config) (pipeline.Options, error) {
	changed := cmd.Flags().Changed
	opts := pipeline.Options{
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		Layout:     cfg.Canvas.Layout,
		Formats:    cfg.Render.Formats,
		NoGradient: !cfg.Render.Gradient,
		NoBorder:   !cfg.Render.Border,
		Angled:     cfg.Render.Angled,
		Title:      f.title,
		Scale:      f.scale,
		Detailed:   f.detailed,
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("layout") {
		opts.Layout = f.layout
	}
	if changed("format") {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if changed("gradient") {
		opts.NoGradient = !f.gradient
	}
	if changed("border") {
		opts.NoBorder = !f.border
	}
	if changed("angled") {
		opts.Angled = f.angled
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	if f.output == stdoutPath && len(opts.Formats) != 1 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "writing to stdout needs exactly one format, got %d", len(opts.Formats))
	}
	return opts, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a tree document (.json, .toml, .yaml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.Config)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			root, err := runner.Load(cmd.Context(), pipeline.Source{Path: args[0]})
			if err != nil {
				return err
			}
			base := basePath(flags.output, args[0])
			return c.runRender(cmd, runner, root, opts, outputPaths(flags.output, base, opts.Formats))
		},
	}
	flags.register(cmd)

	return cmd
}

// runRender executes the pipeline and writes every artifact to its path.
func (c *CLI) runRender(cmd *cobra.Command, runner *pipeline.Runner, root *tree.Node, opts pipeline.Options, paths map[string]string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	watch := startStopwatch(logger)
	opts.Logger = logger

	result, err := runner.Execute(ctx, root, opts)
	if err != nil {
		return err
	}

	for _, format := range opts.Formats {
		if err := writeArtifact(ctx, cmd, paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	watch.done("rendered",
		"formats", strings.Join(opts.Formats, ","),
		"nodes", result.Stats.NodeCount,
		"cached", len(result.CacheInfo.Hits))

	if paths[opts.Formats[0]] == stdoutPath {
		return nil
	}
	printSuccess("Rendered tree")
	printStats(result.Stats.NodeCount, result.Stats.Depth, result.CacheInfo.RenderHit)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	return nil
}

func writeArtifact(ctx context.Context, cmd *cobra.Command, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == stdoutPath {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	return svg.WriteAtomic(path, data)
}

// knownExtensions lists output extensions, compound ones first.
var knownExtensions = []string{"nodelink.svg", "layout.json", "svg", "png", "pdf", "dot", "json"}

// basePath derives the base output path. Without an output it strips the
// extension from input; a known format extension on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range knownExtensions {
		if strings.HasSuffix(output, "."+ext) {
			return strings.TrimSuffix(output, "."+ext)
		}
	}
	return output
}

// outputPaths maps each format to its file. A single format with an
// explicit output writes exactly there.
func outputPaths(output, base string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	for _, f := range formats {
		paths[f] = base + "." + pipeline.Extension(f)
	}
	return paths
}
