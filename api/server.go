// Package api provides the HTTP REST API server for autodcf.
//
// It exposes statement upload and analysis, plus read-only views of the
// running configuration.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/seenimoa/autodcf/internal/analysis"
	"github.com/seenimoa/autodcf/internal/config"
	"github.com/seenimoa/autodcf/internal/infra"
	"github.com/seenimoa/autodcf/internal/loader"
	"github.com/seenimoa/autodcf/internal/report"
)

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	logger  zerolog.Logger
	engine  *analysis.Engine
	opts    loader.Options
	limiter *infra.RateLimiter
	reports *infra.Cache[*report.Report]
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, logger zerolog.Logger) *Server {
	ttl := time.Duration(cfg.API.ReportTTL) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	srv := &Server{
		cfg:     cfg,
		logger:  logger,
		engine:  analysis.NewEngineFromConfig(cfg.Analysis),
		opts:    loader.OptionsFromConfig(cfg.Loader),
		limiter: infra.PerMinute(cfg.API.RateLimit),
		reports: infra.NewCache[*report.Report](ttl, cfg.API.ReportCache),
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until ctx is canceled or
// the process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("starting server")
		serverErrors <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown initiated")
	}

	grace := time.Duration(s.cfg.API.ShutdownGrace) * time.Second
	if grace <= 0 {
		grace = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("graceful shutdown failed")
		return httpSrv.Close()
	}
	return nil
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	r.Use(cors.Handler(corsOptions(s.cfg.API.CORSOrigins)))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Analysis
		r.With(rateLimit(s.limiter)).Post("/analyze", s.handleAnalyze)
		r.Get("/reports/{id}", s.handleGetReport)

		// Configuration
		r.Get("/config", s.handleGetConfig)
		r.Get("/config/settings", s.handleGetSettings)
	})

	return r
}

// corsOptions allows the configured origins with credentials. With no
// origins configured any origin may call the API, but without credentials.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) == 0 {
		opts.AllowedOrigins = []string{"*"}
		opts.AllowCredentials = false
	}
	return opts
}

// ============================================================
// Response types
// ============================================================

// APIResponse is the standard JSON response envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse is the payload of the health endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Version is reported by the health endpoints. It is set at build time.
var Version = "dev"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   Version,
		},
	})
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

func writeErrorf(w http.ResponseWriter, status int, format string, args ...any) {
	writeError(w, status, fmt.Sprintf(format, args...))
}
