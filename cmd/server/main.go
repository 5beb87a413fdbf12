// Package main is the entry point for the sidereal chart service.
// The application computes sidereal natal charts, divisional (varga) charts,
// and Vimshottari dasha timelines for stored birth profiles, and serves them
// over an HTTP API with a TTL'd chart cache in front of the computation core.
//
// The application follows clean architecture principles:
// - Domain layer is pure (no infrastructure dependencies)
// - Repository pattern for data access
// - Service layer for business logic
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arytiwari/jioastro-sub001/internal/chartcache"
	"github.com/arytiwari/jioastro-sub001/internal/config"
	"github.com/arytiwari/jioastro-sub001/internal/database"
	"github.com/arytiwari/jioastro-sub001/internal/ephemeris"
	"github.com/arytiwari/jioastro-sub001/internal/modules/chart"
	"github.com/arytiwari/jioastro-sub001/internal/modules/dasha"
	"github.com/arytiwari/jioastro-sub001/internal/modules/profile"
	"github.com/arytiwari/jioastro-sub001/internal/modules/varga"
	"github.com/arytiwari/jioastro-sub001/internal/scheduler"
	"github.com/arytiwari/jioastro-sub001/internal/server"
	"github.com/arytiwari/jioastro-sub001/pkg/logger"
)

// main orchestrates the system startup sequence:
// 1. Loads configuration from environment variables
// 2. Initializes logging
// 3. Opens the two databases (profiles and chart cache)
// 4. Constructs the ephemeris handle with the configured ayanamsa model
// 5. Wires the computation services (chart, varga, dasha)
// 6. Starts the cache cleanup scheduler
// 7. Starts the HTTP server
// 8. Waits for shutdown signal and performs graceful shutdown
//
// The application uses a 2-database layout:
// - profiles.db: Durable birth profiles
// - chart_cache.db: Ephemeral computed chart artifacts with TTLs
func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("data_dir", cfg.DataDir).
		Str("ayanamsa_model", cfg.AyanamsaModel).
		Int("port", cfg.Port).
		Msg("Starting chart service")

	// Durable profile storage
	profilesDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "profiles.db"),
		Profile: database.ProfileStandard,
		Name:    "profiles",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open profiles database")
	}
	defer profilesDB.Close()

	// Ephemeral chart artifacts, tuned for churn
	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "chart_cache.db"),
		Profile: database.ProfileCache,
		Name:    "chart_cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open chart cache database")
	}
	defer cacheDB.Close()

	// The ayanamsa model is baked into the ephemeris handle at construction,
	// so every computation in this process is consistent by construction.
	eph, err := ephemeris.New(ephemeris.Config{
		Model: ephemeris.AyanamsaModel(cfg.AyanamsaModel),
		Log:   log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ephemeris")
	}

	profileRepo, err := profile.NewRepository(profilesDB.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize profile repository")
	}

	cacheRepo, err := chartcache.NewRepository(cacheDB.Conn())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize chart cache repository")
	}

	chartService := chart.NewService(eph, log)
	transformer := varga.NewTransformer(log)
	dashaEngine := dasha.NewEngine(log)

	// Background cache sweep keeps the expired rows from accumulating;
	// reads never rely on it (freshness is enforced per read).
	sched := scheduler.New(log)
	cleanupJob := chartcache.NewCleanupJob(cacheRepo, log)
	if err := sched.AddJob(cfg.CleanupCron, cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule cache cleanup job")
	}

	// Daily WAL truncation keeps the write-ahead logs bounded on a
	// long-running process
	checkpointJob := database.NewCheckpointJob([]*database.DB{profilesDB, cacheDB}, log)
	if err := sched.AddJob("@daily", checkpointJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule WAL checkpoint job")
	}

	sched.Start()
	defer sched.Stop()

	// Sweep whatever expired while the process was down
	if err := sched.RunNow(cleanupJob); err != nil {
		log.Warn().Err(err).Msg("Startup cache sweep failed")
	}

	srv := server.New(server.Config{
		Log:          log,
		Cfg:          cfg,
		ProfilesDB:   profilesDB,
		CacheDB:      cacheDB,
		ChartService: chartService,
		Transformer:  transformer,
		DashaEngine:  dashaEngine,
		ProfileRepo:  profileRepo,
		CacheRepo:    cacheRepo,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Msg("Chart service ready")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Chart service stopped")
}
