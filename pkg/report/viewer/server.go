package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/damianovsky/playwright-api-spy/pkg/report"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
	"github.com/damianovsky/playwright-api-spy/pkg/spy/store"
	"github.com/damianovsky/playwright-api-spy/pkg/telemetry/metrics"
)

// Options carries the viewer's collaborators.
type Options struct {
	// Store supplies the entries to display.
	Store store.Store

	// Metrics, when non-nil, exposes the collector's registry at /metrics.
	Metrics *metrics.Collector

	// Logger overrides the default component logger.
	Logger *slog.Logger
}

// Server is the HTTP viewer for stored entries.
type Server struct {
	store   store.Store
	metrics *metrics.Collector
	logger  *slog.Logger
	html    *report.HTMLExporter

	srv *http.Server
}

// New creates a viewer server listening on addr.
func New(addr string, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		store:   opts.Store,
		metrics: opts.Metrics,
		logger:  logger.With("component", "viewer"),
		html:    report.NewHTMLExporter(),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(s.requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/", s.handleIndex)
	router.Get("/api/entries", s.handleEntries)
	router.Get("/api/summary", s.handleSummary)
	router.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		router.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Handler returns the server's root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("viewer listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("viewer server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("viewer shutdown: %w", err)
	}
	s.logger.Info("viewer stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.AllEntries(r.Context())
	if err != nil {
		s.serverError(w, "loading entries", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.html.Export(report.BuildDocument(entries), w); err != nil {
		s.logger.Error("rendering report page", "error", err)
	}
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.AllEntries(r.Context())
	if err != nil {
		s.serverError(w, "loading entries", err)
		return
	}
	if entries == nil {
		entries = []*spy.CapturedEntry{}
	}
	s.writeJSON(w, entries)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.AllEntries(r.Context())
	if err != nil {
		s.serverError(w, "loading entries", err)
		return
	}
	s.writeJSON(w, spy.Summarize(entries))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("response write failed", "error", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	http.Error(w, msg, http.StatusInternalServerError)
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}
