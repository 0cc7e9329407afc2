package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treesvg/pkg/cache"
	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/layout"
	"github.com/matzehuels/treesvg/pkg/observability"
	"github.com/matzehuels/treesvg/pkg/tree"
	"github.com/matzehuels/treesvg/pkg/treeio"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and HTTP service use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, caching is disabled.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.Disabled("no cache configured")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load builds the tree described by src.
func (r *Runner) Load(ctx context.Context, src Source) (*tree.Node, error) {
	kind := src.Kind()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, kind)
	start := time.Now()

	root, err := load(src)
	count := 0
	if err == nil {
		err = tree.Validate(root)
	}
	if err == nil {
		count = root.Count()
	}
	hooks.OnLoadComplete(ctx, kind, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded tree", "source", kind, "nodes", count)
	return root, nil
}

func load(src Source) (*tree.Node, error) {
	switch src.Kind() {
	case "random":
		root, err := tree.RandomSeeded(src.Seed, *src.Random)
		if err != nil {
			return nil, err
		}
		if root == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "max depth %d yields no tree", src.Random.MaxDepth)
		}
		return root, nil
	case "document":
		format := treeio.Format(src.Format)
		if format == "" {
			format = treeio.JSON
		}
		return treeio.Read(bytes.NewReader(src.Document), format)
	default:
		if src.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no tree source given")
		}
		return treeio.ReadFile(src.Path)
	}
}

// Execute runs layout and render with caching.
func (r *Runner) Execute(ctx context.Context, root *tree.Node, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hash, err := TreeHash(root)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Tree:      root,
		TreeHash:  hash,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = root.Count()
	result.Stats.EdgeCount = result.Stats.NodeCount - 1
	result.Stats.Depth = root.Depth()

	// Stage 1: Layout
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layoutStart := time.Now()
	l, err := r.Layout(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"strategy", opts.Layout,
		"nodes", len(l.Placements),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, hash, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout places root on the canvas with the configured strategy.
func (r *Runner) Layout(ctx context.Context, root *tree.Node, opts Options) (layout.Result, error) {
	if err := opts.Validate(); err != nil {
		return layout.Result{}, err
	}
	strategy, err := opts.Strategy()
	if err != nil {
		return layout.Result{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, strategy.Name(), root.Count())
	start := time.Now()
	l, err := strategy.Layout(root, opts.Width, opts.Height)
	hooks.OnLayoutComplete(ctx, strategy.Name(), time.Since(start), err)
	return l, err
}

// RenderWithCacheInfo renders every requested format, serving what it can
// from the cache, and returns the formats that were cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, treeHash string, l layout.Result, opts Options) (map[string][]byte, []string, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits, missing []string
	reason, disabled := cache.IsDisabled(r.Cache)
	if disabled {
		opts.Logger.Debug("artifact cache disabled", "reason", reason)
	}
	for _, format := range opts.Formats {
		if disabled {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			// A broken cache degrades to a miss.
			opts.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			hits = append(hits, format)
			continue
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}

	var err error
	if len(missing) > 0 {
		var rendered map[string][]byte
		rendered, err = Render(ctx, l, withFormats(opts, missing))
		for format, data := range rendered {
			artifacts[format] = data
			if disabled {
				continue
			}
			key := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
			if serr := r.Cache.Set(ctx, key, data, cache.TTLArtifact); serr != nil {
				opts.Logger.Warn("cache write failed", "format", format, "err", serr)
				continue
			}
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return artifacts, hits, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// TreeHash returns the content hash of root's document form.
func TreeHash(root *tree.Node) (string, error) {
	doc, err := treeio.FromTree(root)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	return cache.Hash(data), nil
}

func withFormats(opts Options, formats []string) Options {
	opts.Formats = formats
	return opts
}
