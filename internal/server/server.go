package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"

	"github.com/goliatone/go-compattable/pkg/bcd"
	"github.com/goliatone/go-compattable/pkg/orchestrator"
	"github.com/goliatone/go-compattable/pkg/renderers/html"
)

// RequestIDHeader carries the request id assigned by the access logger.
const RequestIDHeader = "X-Request-Id"

// NoDataHeader is set on responses whose body is the no-data message.
const NoDataHeader = "X-Compattable-No-Data"

// Server renders tables for a single loaded dataset.
type Server struct {
	opts    Options
	dataset *bcd.Node
	orch    *orchestrator.Orchestrator
	paths   []string
	router  chi.Router
}

// New builds a Server around dataset.
func New(dataset *bcd.Node, fns ...OptionFn) (*Server, error) {
	if dataset == nil {
		return nil, errors.New("server: dataset is required")
	}
	opts := NewOptions(fns...)

	orch := opts.Orchestrator
	if orch == nil {
		orch = orchestrator.New(
			orchestrator.WithLogger(opts.Logger),
			orchestrator.WithDefaultRenderer(opts.DefaultRenderer),
		)
	}

	s := &Server{
		opts:    opts,
		dataset: dataset,
		orch:    orch,
		paths:   dataset.FeaturePaths(),
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the routed handler with logging middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(s.opts.Logger))
	r.Use(hlog.RequestIDHandler("req_id", RequestIDHeader))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
	r.Use(middleware.GetHead)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(html.AssetsFS()))))

	r.Group(func(r chi.Router) {
		r.Use(s.guard)
		r.Get("/tables/{query}", s.handleTable)
		r.Get("/features", s.handleFeatures)
	})
	return r
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

func (s *Server) guard(next http.Handler) http.Handler {
	if s.opts.Guard == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.opts.Guard(r); err != nil {
			code := http.StatusForbidden
			var httpErr HTTPError
			if errors.As(err, &httpErr) && httpErr != nil {
				code = httpErr.StatusCode()
			}
			http.Error(w, http.StatusText(code), code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := strings.TrimSpace(chi.URLParam(r, "query"))
	if query == "" {
		s.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: errors.New("query is required")})
		return
	}

	depth, err := s.depthFrom(params.Get("depth"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	renderOptions := s.opts.RenderOptions
	if raw := params.Get("standalone"); raw != "" {
		standalone, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("invalid standalone %q", raw)})
			return
		}
		renderOptions.Standalone = standalone
	}

	locale := firstNonEmpty(params.Get("locale"), s.opts.Locale)
	if renderOptions.Locale == "" {
		renderOptions.Locale = locale
	}

	result, err := s.orch.Render(r.Context(), orchestrator.Request{
		Dataset:       s.dataset,
		Query:         query,
		Depth:         &depth,
		Locale:        locale,
		Strings:       s.opts.Strings,
		ForMDNURL:     firstNonEmpty(params.Get("for"), s.opts.ForMDNURL),
		Renderer:      firstNonEmpty(params.Get("renderer"), s.opts.DefaultRenderer),
		RenderOptions: renderOptions,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	status := http.StatusOK
	if result.NoData {
		w.Header().Set(NoDataHeader, "true")
		status = http.StatusNotFound
	}
	w.WriteHeader(status)
	if _, err := w.Write(result.Output); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("write response")
	}
}

type featuresResponse struct {
	Data []string `json:"data"`
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	limit := parseInt(params.Get("limit"))

	results := Search(s.paths, params.Get("q"), limit, s.opts)
	if results == nil {
		results = []string{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(featuresResponse{Data: results})
}

func (s *Server) depthFrom(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.opts.DefaultDepth, nil
	}
	depth, err := strconv.Atoi(raw)
	if err != nil {
		return 0, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("invalid depth %q", raw)}
	}
	if depth > s.opts.MaxDepth {
		return 0, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("depth %d exceeds maximum %d", depth, s.opts.MaxDepth)}
	}
	return depth, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	event := hlog.FromRequest(r).Warn()
	if code >= http.StatusInternalServerError {
		event = hlog.FromRequest(r).Error()
	}
	event.Err(err).Int("status", code).Msg("render failed")
	http.Error(w, err.Error(), code)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	logger := s.opts.Logger
	logger.Info().Str("addr", addr).Int("features", len(s.paths)).Msg("listening")

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
