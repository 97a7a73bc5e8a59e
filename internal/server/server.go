// Package server exposes table of contents generation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/itsmostafa/mktoc/internal/config"
	"github.com/itsmostafa/mktoc/internal/toc"
)

// Server is the mktoc HTTP API.
type Server struct {
	router   chi.Router
	gen      *toc.Generator
	log      *slog.Logger
	cfg      config.ServerSettings
	fallback toc.Config
}

// New creates a Server. fallback is the config used for documents without
// embedded JSON; query parameters override it per request.
func New(gen *toc.Generator, log *slog.Logger, cfg config.ServerSettings, fallback toc.Config) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		gen:      gen,
		log:      log,
		cfg:      cfg,
		fallback: fallback,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/toc", s.handleTOC)
		r.Post("/toc/render", s.handleRender)
		r.Post("/headings", s.handleHeadings)
		r.Post("/check", s.handleCheck)
	})

	s.router = r
}

// Run serves on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
