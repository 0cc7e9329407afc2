// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /render               tree document body, rendered in one format
//	GET  /random               random tree, rendered in one format
//	GET  /styles/{descriptor}  resolve a style descriptor
//	GET  /healthz              liveness check
//
// Render options come from the query string (format, width, height, layout,
// gradient, border, angled, title). Validation failures return 400 with a
// JSON error body; anything else returns 500.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/treesvg/pkg/observability"
	"github.com/matzehuels/treesvg/pkg/pipeline"
	"github.com/matzehuels/treesvg/pkg/tree"
)

const (
	// MaxBodyBytes caps the size of an uploaded tree document.
	MaxBodyBytes = 1 << 20

	// MaxRandomDepth caps max_depth on /random.
	MaxRandomDepth = 8

	shutdownTimeout = 5 * time.Second
)

// Server serves the render pipeline over HTTP.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	random   tree.RandomOptions
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the render options used when a request leaves them out.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithRandomOptions sets the generator settings for /random.
func WithRandomOptions(opts tree.RandomOptions) Option {
	return func(s *Server) { s.random = opts }
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger.WithPrefix("http"),
		random: tree.DefaultRandomOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.defaults.Logger = s.logger
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Post("/render", s.handleRender)
	r.Get("/random", s.handleRandom)
	r.Get("/styles/{descriptor}", s.handleStyle)
	r.Get("/healthz", s.handleHealth)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("stopped")
	return nil
}

// observe reports each request to the registered HTTP hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}
