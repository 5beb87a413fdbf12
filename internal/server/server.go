// Package server provides the HTTP server and routing for the chart service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/arytiwari/jioastro-sub001/internal/chartcache"
	"github.com/arytiwari/jioastro-sub001/internal/config"
	"github.com/arytiwari/jioastro-sub001/internal/database"
	"github.com/arytiwari/jioastro-sub001/internal/modules/chart"
	charthandlers "github.com/arytiwari/jioastro-sub001/internal/modules/chart/handlers"
	"github.com/arytiwari/jioastro-sub001/internal/modules/dasha"
	"github.com/arytiwari/jioastro-sub001/internal/modules/profile"
	profilehandlers "github.com/arytiwari/jioastro-sub001/internal/modules/profile/handlers"
	"github.com/arytiwari/jioastro-sub001/internal/modules/varga"
)

// Config holds server configuration
type Config struct {
	Log          zerolog.Logger
	Cfg          *config.Config
	ProfilesDB   *database.DB
	CacheDB      *database.DB
	ChartService *chart.Service
	Transformer  *varga.Transformer
	DashaEngine  *dasha.Engine
	ProfileRepo  *profile.Repository
	CacheRepo    *chartcache.Repository
}

// Server represents the HTTP server
type Server struct {
	router      *chi.Mux
	server      *http.Server
	log         zerolog.Logger
	cfg         *config.Config
	profilesDB  *database.DB
	cacheDB     *database.DB
	chartSvc    *chart.Service
	transformer *varga.Transformer
	dashaEngine *dasha.Engine
	profileRepo *profile.Repository
	cacheRepo   *chartcache.Repository
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		log:         cfg.Log.With().Str("component", "server").Logger(),
		cfg:         cfg.Cfg,
		profilesDB:  cfg.ProfilesDB,
		cacheDB:     cfg.CacheDB,
		chartSvc:    cfg.ChartService,
		transformer: cfg.Transformer,
		dashaEngine: cfg.DashaEngine,
		profileRepo: cfg.ProfileRepo,
		cacheRepo:   cfg.CacheRepo,
	}

	s.setupMiddleware(cfg.Cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Cfg.Port),
		Handler: s.router,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		chartHandler := charthandlers.NewHandler(
			s.chartSvc,
			s.transformer,
			s.dashaEngine,
			s.profileRepo,
			s.cacheRepo,
			s.log,
		)
		chartHandler.RegisterRoutes(r)

		profileHandler := profilehandlers.NewHandler(s.profileRepo, s.cacheRepo, s.log)
		profileHandler.RegisterRoutes(r)
	})
}

// handleHealth reports process liveness plus database reachability.
// full=true runs the expensive integrity check instead of a bare ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	full := r.URL.Query().Get("full") == "true"

	databases := map[string]string{}
	for name, db := range map[string]*database.DB{
		"profiles":    s.profilesDB,
		"chart_cache": s.cacheDB,
	} {
		check := db.QuickCheck
		if full {
			check = db.HealthCheck
		}
		if err := check(r.Context()); err != nil {
			databases[name] = "unreachable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			databases[name] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"databases": databases,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

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

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
