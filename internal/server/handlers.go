package server

import (
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/treesvg/pkg/buildinfo"
	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/pipeline"
	"github.com/matzehuels/treesvg/pkg/style"
	"github.com/matzehuels/treesvg/pkg/tree"
)

// Response headers.
const (
	HeaderCache    = "X-Treesvg-Cache"
	HeaderTreeHash = "X-Treesvg-Tree"
	HeaderSeed     = "X-Treesvg-Seed"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatPDF:      "application/pdf",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatNodelink: "image/svg+xml",
	pipeline.FormatJSON:     "application/json",
}

type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// StyleInfo is the /styles response.
type StyleInfo struct {
	Descriptor string  `json:"descriptor"`
	Color      string  `json:"color"`
	RGB        string  `json:"rgb"`
	Size       float64 `json:"size"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	input := r.URL.Query().Get("input")
	if input == "" {
		input = "json"
	}
	root, err := s.runner.Load(r.Context(), pipeline.Source{Document: body, Format: input})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, root, opts)
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	random := s.random
	if v := q.Get("max_depth"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 0 || d > MaxRandomDepth {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
				"max_depth must be an integer in [0, %d]", MaxRandomDepth))
			return
		}
		random.MaxDepth = d
	}
	random.MaxDepth = min(random.MaxDepth, MaxRandomDepth)

	seed := rand.Uint64()
	if v := q.Get("seed"); v != "" {
		if seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer"))
			return
		}
	}

	root, err := s.runner.Load(r.Context(), pipeline.Source{Random: &random, Seed: seed})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set(HeaderSeed, strconv.FormatUint(seed, 10))
	s.render(w, r, root, opts)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, root *tree.Node, opts pipeline.Options) {
	result, err := s.runner.Execute(r.Context(), root, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	cacheState := "miss"
	if result.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(HeaderCache, cacheState)
	w.Header().Set(HeaderTreeHash, result.TreeHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	descriptor := chi.URLParam(r, "descriptor")
	if unescaped, err := url.PathUnescape(descriptor); err == nil {
		descriptor = unescaped
	}
	st, err := style.Parse(descriptor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StyleInfo{
		Descriptor: st.String(),
		Color:      st.Color.Hex(),
		RGB:        st.Color.RGB(),
		Size:       st.Size,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// renderOptions overlays the query string on the server defaults.
func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.defaults
	opts.Formats = []string{pipeline.FormatSVG}

	if v := q.Get("format"); v != "" {
		opts.Formats = []string{v}
	}
	if v := q.Get("layout"); v != "" {
		opts.Layout = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}

	floats := map[string]*float64{"width": &opts.Width, "height": &opts.Height}
	for name, dst := range floats {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidCanvas, "%s %q is not a number", name, v)
		}
		*dst = f
	}

	// Query flags are positive; Options stores their negation.
	flags := []struct {
		name   string
		dst    *bool
		invert bool
	}{
		{"gradient", &opts.NoGradient, true},
		{"border", &opts.NoBorder, true},
		{"angled", &opts.Angled, false},
		{"detailed", &opts.Detailed, false},
	}
	for _, f := range flags {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s %q is not a boolean", f.name, v)
		}
		*f.dst = b != f.invert
	}

	err := opts.Validate()
	return opts, err
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("rejected request", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Code: string(code), Error: errors.UserMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
