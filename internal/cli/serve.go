package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treesvg/internal/server"
	"github.com/matzehuels/treesvg/pkg/buildinfo"
	"github.com/matzehuels/treesvg/pkg/cache"
	"github.com/matzehuels/treesvg/pkg/pipeline"
)

// serveCommand creates the serve command running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisAddr, redisPassword string
	var redisDB int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve the render pipeline over HTTP.

Rendered artifacts are cached in Redis when --redis-addr is set, otherwise in
process memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("redis-addr") {
				redisAddr = c.Config.Server.RedisAddr
			}

			var store cache.Cache = cache.NewMemoryCache()
			if redisAddr != "" {
				rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
					Addr:     redisAddr,
					Password: redisPassword,
					DB:       redisDB,
					Prefix:   appName + ":",
				})
				if err != nil {
					return err
				}
				store = rc
				logger.Info("using redis cache", "addr", redisAddr)
			}

			keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
			runner := pipeline.NewRunner(store, keyer, logger)
			defer runner.Close()

			srv := server.New(runner, logger,
				server.WithDefaults(pipeline.Options{
					Width:      c.Config.Canvas.Width,
					Height:     c.Config.Canvas.Height,
					Layout:     c.Config.Canvas.Layout,
					NoGradient: !c.Config.Render.Gradient,
					NoBorder:   !c.Config.Render.Border,
					Angled:     c.Config.Render.Angled,
				}),
				server.WithRandomOptions(c.Config.RandomOptions()),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for the artifact cache")
	cmd.Flags().StringVar(&redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")

	return cmd
}
