// Package server exposes the catalog API the orchestration client talks
// to: search, targeted and random downloads, and the raw scrape dump.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"trailerdl/internal/fetch"
	"trailerdl/internal/scrape"
	"trailerdl/pkg/config"
	"trailerdl/pkg/logger"
)

// Server wraps the HTTP server with lifecycle management.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	logger     logger.Logger
}

// New assembles the backend: scraping engine, asset fetch engine, scrape
// script runner, handlers, and router.
func New(cfg *config.Config, log logger.Logger) *Server {
	if log == nil {
		log = logger.GetLogger()
	}

	engine := scrape.New(&cfg.Scrape, log)
	assets := fetch.New(cfg, log)
	runner := scrape.NewScriptRunner(cfg.Server.ScrapeCommand, log)
	handler := NewHandler(engine, assets, runner, log)

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Server.ListenAddr,
			Handler: NewRouter(handler, log),
		},
		cfg:    cfg,
		logger: log,
	}
}

// Run serves until the context is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoWithFields("server listening", map[string]interface{}{
			"addr": s.httpServer.Addr,
		})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}
