// Package api serves reconciliation reports over HTTP for dashboards.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cleared-dev/payrecon/internal/api/handlers"
	"github.com/cleared-dev/payrecon/internal/api/middleware"
	"github.com/cleared-dev/payrecon/internal/logging"
	"github.com/cleared-dev/payrecon/internal/service"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: middleware.DefaultCORSConfig().AllowedOrigins,
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	svc        *service.Service
}

// NewServer creates a new API server backed by svc.
func NewServer(cfg Config, svc *service.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: logging.WithComponent(logger, "api"),
		svc:    svc,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.Recoverer)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = s.config.AllowedOrigins
	s.router.Use(middleware.CORS(cors))

	s.router.Use(middleware.Logging(s.logger))
}

func (s *Server) setupRoutes() {
	// Health check (no /api prefix, for load balancers)
	s.router.Get("/health", handlers.NewHealthHandler().ServeHTTP)

	recon := handlers.NewReconcileHandler(s.svc, s.logger)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/reconciliation", recon.Report)
		r.Get("/results", recon.Results)
		r.Get("/summary", recon.Summary)
		r.Post("/reconcile", recon.Reconcile)
	})
}

// Start starts the HTTP server and blocks until it stops. Start after
// Shutdown returns nil immediately.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.httpServer.Addr, "source", s.svc.SourceName())

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server. It is safe to call before or
// concurrently with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
