package cli

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treesvg/pkg/pipeline"
	"github.com/matzehuels/treesvg/pkg/tree"
	"github.com/matzehuels/treesvg/pkg/treeio"
)

// randomOpts holds the generator flags of the random command.
type randomOpts struct {
	seed     uint64
	maxDepth int
	children []int
	values   []string
	sizes    []float64
	colors   []string
	catalog  bool
	save     string // tree document to write alongside the render
	print    bool   // print the tree listing
}

// randomCommand creates the random command.
func (c *CLI) randomCommand() *cobra.Command {
	var flags renderFlags
	var opts randomOpts

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate and render a random tree",
		Long: `Generate a random tree and render it.

Every node draws its value, color, size and child count uniformly from the
candidate sets. The same seed and candidates always produce the same tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderOpts, err := flags.options(cmd, c.Config)
			if err != nil {
				return err
			}
			gen := c.randomOptions(cmd, opts)
			seed := c.randomSeed(cmd, opts)

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			root, err := runner.Load(cmd.Context(), pipeline.Source{Random: &gen, Seed: seed})
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("generated tree", "seed", seed, "nodes", root.Count())

			if opts.print {
				fmt.Fprintln(cmd.OutOrStdout(), root.Describe())
			}
			if opts.save != "" {
				if err := treeio.WriteFile(opts.save, root); err != nil {
					return err
				}
			}

			base := basePath(flags.output, fmt.Sprintf("random-%d", seed))
			if err := c.runRender(cmd, runner, root, renderOpts, outputPaths(flags.output, base, renderOpts.Formats)); err != nil {
				return err
			}
			if flags.output != stdoutPath {
				printKeyValue("seed", strconv.FormatUint(seed, 10))
				if opts.save != "" {
					printFile(opts.save)
					printNextStep("Render it again", "treesvg render "+opts.save)
				}
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.Uint64Var(&opts.seed, "seed", 0, "random seed (default from config, else random)")
	fl.IntVar(&opts.maxDepth, "max-depth", tree.DefaultRandomOptions().MaxDepth, "maximum tree depth")
	fl.IntSliceVar(&opts.children, "children", nil, "possible child counts (default 0,1,2,3,4)")
	fl.StringSliceVar(&opts.values, "values", nil, "possible node values (default 0..9)")
	fl.Float64SliceVar(&opts.sizes, "sizes", nil, "possible node sizes (default 5..20)")
	fl.StringSliceVar(&opts.colors, "colors", nil, "possible colors (default: whole RGB spectrum)")
	fl.BoolVar(&opts.catalog, "catalog", false, "draw colors from the named color catalog")
	fl.StringVar(&opts.save, "save", "", "also write the tree document (.json, .toml, .yaml)")
	fl.BoolVar(&opts.print, "print", false, "print the generated tree")
	flags.register(cmd)

	return cmd
}

// randomOptions merges generator flags over the [random] config section.
func (c *CLI) randomOptions(cmd *cobra.Command, opts randomOpts) tree.RandomOptions {
	gen := c.Config.RandomOptions()
	changed := cmd.Flags().Changed
	if changed("max-depth") {
		gen.MaxDepth = opts.maxDepth
	}
	if changed("children") {
		gen.Children = opts.children
	}
	if changed("sizes") {
		gen.Sizes = opts.sizes
	}
	if changed("colors") {
		gen.Colors = opts.colors
	}
	if changed("values") {
		gen.Values = parseValues(opts.values)
	}
	gen.UseCatalog = opts.catalog
	return gen
}

func (c *CLI) randomSeed(cmd *cobra.Command, opts randomOpts) uint64 {
	switch {
	case cmd.Flags().Changed("seed"):
		return opts.seed
	case c.Config.Random.Seed != 0:
		return c.Config.Random.Seed
	}
	return rand.Uint64()
}

// parseValues keeps integers numeric so documents round-trip them as numbers.
func parseValues(raw []string) []any {
	values := make([]any, len(raw))
	for i, v := range raw {
		if n, err := strconv.Atoi(v); err == nil {
			values[i] = n
		} else {
			values[i] = v
		}
	}
	return values
}
