// Package server provides the HTTP server implementation.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/listbot/internal/command"
	"github.com/vyrodovalexey/listbot/internal/config"
	"github.com/vyrodovalexey/listbot/internal/handler"
	"github.com/vyrodovalexey/listbot/internal/middleware"
	"github.com/vyrodovalexey/listbot/internal/store"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	config     *config.Config
	logger     *zap.Logger
}

// New creates a new Server instance. The list store is shared by every
// request and owned by the caller.
func New(cfg *config.Config, logger *zap.Logger, listStore store.ListStore) *Server {
	router := mux.NewRouter()

	s := &Server{
		router: router,
		config: cfg,
		logger: logger,
	}

	s.setupMiddleware()
	s.setupRoutes(listStore)
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures the middleware chain.
func (s *Server) setupMiddleware() {
	// Apply middleware in order (first applied = outermost)
	s.router.Use(mux.MiddlewareFunc(middleware.Recovery(s.logger)))
	s.router.Use(mux.MiddlewareFunc(middleware.RequestID()))

	if s.config.MetricsEnabled {
		s.router.Use(mux.MiddlewareFunc(middleware.Metrics()))
	}

	s.router.Use(mux.MiddlewareFunc(middleware.Logging(s.logger)))
}

// setupRoutes configures the webhook, probe, metrics and static routes.
func (s *Server) setupRoutes(listStore store.ListStore) {
	executor := command.NewExecutor(listStore, s.logger, s.config.StoreTimeout)
	commandHandler := handler.NewCommandHandler(executor, listStore, s.logger)
	commandHandler.RegisterRoutes(s.router)

	if s.config.MetricsEnabled {
		s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	// Static assets are registered last so the routes above take priority.
	if s.config.StaticDir != "" {
		s.router.PathPrefix("/").
			Handler(http.FileServer(http.Dir(s.config.StaticDir))).
			Methods(http.MethodGet, http.MethodHead)
	}

	// Router middleware does not run for unmatched routes, so the 404
	// handler carries its own logging.
	notFound := middleware.Logging(s.logger)(http.HandlerFunc(commandHandler.NotFound))
	s.router.NotFoundHandler = notFound
	s.router.MethodNotAllowedHandler = notFound
}

// setupHTTPServer configures the HTTP server.
func (s *Server) setupHTTPServer() {
	s.httpServer = &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server",
		zap.String("address", s.config.Address()),
		zap.Bool("metrics_enabled", s.config.MetricsEnabled),
		zap.String("static_dir", s.config.StaticDir),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server listen and serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Router returns the server's router for testing purposes.
func (s *Server) Router() *mux.Router {
	return s.router
}
