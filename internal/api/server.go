// Package api exposes the QC pipeline over HTTP. It owns transport concerns
// only; all subtitle semantics live in the core packages.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/config"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/logging"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/profile"
)

// Server wires the QC core behind a chi router.
type Server struct {
	cfg     config.Config
	logger  *logging.Logger
	catalog *profile.Catalog
	router  chi.Router
}

func NewServer(cfg config.Config, logger *logging.Logger, catalog *profile.Catalog) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
	}
	s.router = s.routes()
	return s
}

// middleware order: recoverer outermost, then correlation, metrics, logging
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(Metrics)
	r.Use(Logging(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/profiles", s.handleProfiles)
		r.Post("/qc/run", s.handleRun)
		r.Post("/qc/fix", s.handleFix)
	})
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Bind,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Infow("QC server listening", "bind", s.cfg.Bind)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
