// Package server exposes figure rendering over HTTP, so one process can
// answer repeated region queries against a fixed set of data files.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/figure"
	"github.com/bioplotkit/hicfig/pkg/render"
)

// Server renders figures on demand. The base options fix the data files
// and comparison settings; each request supplies its own region and
// output format.
type Server struct {
	Base    figure.Options
	Render  render.Options
	Logger  *log.Logger
	builder *figure.Builder
}

// New creates a server around a base figure configuration.
func New(base figure.Options, renderOpts render.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Base:    base,
		Render:  renderOpts,
		Logger:  logger,
		builder: figure.NewBuilder(logger),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/v1/figure", s.handleFigure)
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.Logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleFigure renders one figure per request. Query parameters:
//
//	region  genomic window (required), e.g. chr2:10000000-12000000
//	format  png (default), pdf, or svg
func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	renderID := uuid.New().String()
	logger := s.Logger.With("render_id", renderID)

	opts := s.Base
	opts.Region = r.URL.Query().Get("region")
	opts.Logger = logger

	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatPNG
	}
	if !render.ValidFormats[format] {
		writeError(w, renderID, errors.New(errors.ErrCodeUnsupportedFormat,
			"unsupported output format %q (supported: png, pdf, svg)", format))
		return
	}

	start := time.Now()
	fig, err := s.builder.Build(r.Context(), opts)
	if err != nil {
		logger.Error("figure build failed", "err", err)
		writeError(w, renderID, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Render-Id", renderID)
	if err := render.Write(fig, w, format, s.Render); err != nil {
		// Headers are already out; all we can do is log.
		logger.Error("render failed", "err", err)
		return
	}
	logger.Info("rendered figure",
		"region", opts.Region,
		"format", format,
		"duration", time.Since(start).Round(time.Millisecond))
}

var contentTypes = map[string]string{
	render.FormatPNG: "image/png",
	render.FormatPDF: "application/pdf",
	render.FormatSVG: "image/svg+xml",
}

// writeError maps the error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, renderID string, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidParameter,
		errors.ErrCodeInvalidRegion,
		errors.ErrCodeInvalidConfig,
		errors.ErrCodeUnsupportedFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	w.Header().Set("X-Render-Id", renderID)
	body := errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		body = string(code) + ": " + body
	}
	http.Error(w, body, status)
}
