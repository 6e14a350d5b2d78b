package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"alight_calculator/pkg/api/server"
	"alight_calculator/pkg/config"
	"alight_calculator/pkg/core/agent"
	"alight_calculator/pkg/core/benchmark"
	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/narrative"
	"alight_calculator/pkg/core/prompt"
	"alight_calculator/pkg/core/store"
	"alight_calculator/pkg/logger"
	"alight_calculator/pkg/metrics"
)

func main() {
	// Load configuration (.env included)
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(logger.Config{Level: "info", Pretty: true})
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)
	log.Info().Msg("Starting Alight calculator API")

	// Benchmarks: built-in tables, optionally overridden from disk
	benchmarks := benchmark.Default()
	if cfg.BenchmarkOverridesPath != "" {
		benchmarks, err = benchmark.LoadOverrides(cfg.BenchmarkOverridesPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.BenchmarkOverridesPath).Msg("Failed to load benchmark overrides")
		}
		log.Info().Str("path", cfg.BenchmarkOverridesPath).Msg("Benchmark overrides loaded")
	}
	engine := calculator.NewEngine(benchmarks)

	// Prompt library: files on disk first, built-ins fill the gaps
	n, err := prompt.LoadFromDirectory(prompt.Get(), cfg.PromptsDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.PromptsDir).Msg("Failed to load prompt overrides, using built-in prompts")
	} else if n > 0 {
		log.Info().Int("count", n).Str("dir", cfg.PromptsDir).Msg("Prompt overrides loaded")
	}

	// LLM providers
	agentCfg, err := agent.LoadConfig(cfg.ModelsConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load model config")
	}
	agentMgr := agent.NewManager(agentCfg, nil, log)
	log.Info().Str("provider", agentMgr.GetActiveProvider()).Strs("available", agentMgr.Available()).Msg("LLM providers ready")

	narrativeSvc, err := narrative.NewService(agentMgr, prompt.Get(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize narrative service")
	}

	// Saved deals
	repo, closeRepo, err := openDealRepository(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.DealStore).Msg("Failed to open deal store")
	}
	defer closeRepo()

	srv := server.New(server.Config{
		Addr:           cfg.Addr(),
		Log:            log,
		Engine:         engine,
		Narrative:      narrativeSvc,
		Agents:         agentMgr,
		Deals:          store.NewDealBook(repo),
		Metrics:        metrics.New(),
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func openDealRepository(cfg *config.Config, log zerolog.Logger) (store.DealRepository, func(), error) {
	noop := func() {}
	switch cfg.DealStore {
	case config.DealStoreMemory:
		return store.NewMemoryRepository(), noop, nil
	case config.DealStorePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.InitDB(ctx, cfg.DatabaseURL); err != nil {
			return nil, noop, err
		}
		repo := store.NewPostgresRepository(store.GetPool(), cfg.Workspace)
		if err := repo.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, noop, err
		}
		log.Info().Str("workspace", cfg.Workspace).Msg("Saved deals in Postgres")
		return repo, store.Close, nil
	default:
		repo, err := store.NewFileRepository(cfg.DealsFile, log)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("path", cfg.DealsFile).Msg("Saved deals in file")
		return repo, noop, nil
	}
}
