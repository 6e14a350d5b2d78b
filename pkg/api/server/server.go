// Package server wires the HTTP API: middleware, metrics and every handler group.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	calcapi "alight_calculator/pkg/api/calculator"
	configapi "alight_calculator/pkg/api/config"
	dealsapi "alight_calculator/pkg/api/deals"
	exportapi "alight_calculator/pkg/api/export"
	narrativeapi "alight_calculator/pkg/api/narrative"
	"alight_calculator/pkg/api/respond"
	"alight_calculator/pkg/core/agent"
	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/narrative"
	"alight_calculator/pkg/core/store"
	"alight_calculator/pkg/metrics"
)

// Config holds server configuration
type Config struct {
	Addr           string
	Log            zerolog.Logger
	Engine         *calculator.Engine
	Narrative      *narrative.Service
	Agents         *agent.Manager
	Deals          *store.DealBook
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	if cfg.Engine == nil {
		cfg.Engine = calculator.NewEngine(nil)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		metrics: cfg.Metrics,
	}

	s.setupMiddleware(cfg)
	s.setupRoutes(cfg)

	s.server = &http.Server{
		Addr:        cfg.Addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// streamed verdicts and memo generation outlive a short write timeout
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(cfg Config) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging and metrics
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(cfg.RequestTimeout))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Client-Info", "Apikey"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(cfg Config) {
	// Health check
	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	calc := calcapi.NewHandler(cfg.Engine, s.metrics, cfg.Log)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		calc.Routes(r)
		exportapi.NewHandler(cfg.Engine, cfg.Narrative, cfg.Log).Routes(r)

		if cfg.Narrative != nil {
			narrativeapi.NewHandler(cfg.Narrative, s.metrics, cfg.Log).Routes(r)
		}
		if cfg.Deals != nil {
			dealsapi.NewHandler(cfg.Deals, cfg.Log).Routes(r)
		}
		if cfg.Agents != nil {
			configapi.NewHandler(cfg.Agents).Routes(r)
		}
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "not found")
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loggingMiddleware logs HTTP requests and records them against their route pattern.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		s.metrics.ObserveHTTP(route, r.Method, ww.Status(), time.Since(start))

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
