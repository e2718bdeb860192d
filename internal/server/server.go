// Package server provides the HTTP API for Lupa.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/lupa/internal/config"
	"github.com/hyperjump/lupa/internal/search"
)

// Reloader reloads records and settings from their sources.
type Reloader interface {
	Reload(ctx context.Context) error
	// Settings returns the settings loaded from the settings source, if any.
	Settings() map[string]interface{}
}

// Server is the HTTP server for the Lupa API.
type Server struct {
	engine   *search.Engine
	reloader Reloader // optional; nil disables /api/v1/reload
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	reloader Reloader,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine:   engine,
		reloader: reloader,
		config:   cfg,
		logger:   logger,
	}
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.handleSearchGet)
		r.Post("/search", s.handleSearch)
		r.Get("/records", s.handleRecords)
		r.Get("/settings", s.handleSettings)
		r.Post("/reload", s.handleReload)
	})
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
