package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/paneldeck/paneldeck/internal/auth"
	"github.com/paneldeck/paneldeck/internal/collection"
	"github.com/paneldeck/paneldeck/internal/core/cache"
	corecfg "github.com/paneldeck/paneldeck/internal/core/config"
	"github.com/paneldeck/paneldeck/internal/core/storage"
	"github.com/paneldeck/paneldeck/internal/core/storage/memory"
	"github.com/paneldeck/paneldeck/internal/core/storage/postgres"
	"github.com/paneldeck/paneldeck/internal/layout"
	"github.com/paneldeck/paneldeck/internal/metrics"
	"github.com/paneldeck/paneldeck/internal/migrations"
	"github.com/paneldeck/paneldeck/internal/server"
	"github.com/paneldeck/paneldeck/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "paneldeck.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Server.Mode == "debug" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	slog.Info("Loaded config",
		"addr", cfg.Server.Addr(),
		"base_path", cfg.Server.BasePath,
		"database", cfg.Database.Type,
		"cache_enabled", cfg.Cache.Enabled,
		"cache_backend", cfg.Cache.Backend,
		"telemetry_enabled", cfg.Telemetry.Enabled)

	// 2. Initialize Storage
	var (
		finder  storage.DocumentFinder
		layouts storage.LayoutStore
		health  server.HealthChecker
	)
	switch cfg.Database.Type {
	case "postgres":
		dbAdapter, err := postgres.NewAdapter(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer dbAdapter.Close()

		// 2.1. Run Database Migrations
		if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		if err := dbAdapter.ValidateSchema(context.Background()); err != nil {
			slog.Error("Database schema is not ready", "error", err)
			os.Exit(1)
		}

		layoutAdapter, err := postgres.NewLayoutAdapter(dbAdapter.DB())
		if err != nil {
			slog.Error("Failed to initialize layout store", "error", err)
			os.Exit(1)
		}
		defer layoutAdapter.Close()

		finder, layouts, health = dbAdapter, layoutAdapter, dbAdapter

	case "memory":
		docs := memory.NewDocumentStore()
		if cfg.Database.SeedPath != "" {
			if err := docs.LoadSeedFile(cfg.Database.SeedPath); err != nil {
				slog.Error("Failed to load seed file", "path", cfg.Database.SeedPath, "error", err)
				os.Exit(1)
			}
		}
		finder, layouts = docs, memory.NewLayoutStore()
	}

	// 3. Load Collection Definitions
	registry, err := collection.LoadDir(cfg.Collections.ConfigDir)
	if err != nil {
		slog.Error("Failed to load collections", "dir", cfg.Collections.ConfigDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Collections loaded", "dir", cfg.Collections.ConfigDir, "count", len(registry.List()))

	// 4. Initialize Telemetry
	var promMetrics *telemetry.Metrics
	if cfg.Telemetry.Enabled {
		promMetrics = telemetry.NewMetrics(nil)
	}

	// 5. Initialize Response Cache
	var responseCache *metrics.ResponseCache
	if cfg.Cache.Enabled {
		var store cache.Store
		switch cfg.Cache.Backend {
		case "redis":
			client, err := cache.NewRedisClient(cache.RedisConfig{
				Address:  cfg.Cache.Redis.Address,
				Password: cfg.Cache.Redis.Password,
				DB:       cfg.Cache.Redis.DB,
			})
			if err != nil {
				slog.Error("Failed to connect to redis", "error", err)
				os.Exit(1)
			}
			defer client.Close()
			store = cache.NewRedisStore(client, cfg.Cache.TTLDuration())
		default:
			store = cache.NewLRUStore(cfg.Cache.Capacity, cfg.Cache.TTLDuration())
		}
		responseCache = metrics.NewResponseCache(store, promMetrics)
		slog.Info("Response cache enabled", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTLDuration())
	}

	// 6. Initialize Services
	metricsSvc := metrics.NewService(finder, registry, promMetrics)
	metricsHandler := metrics.NewHandler(metricsSvc, responseCache, promMetrics, cfg.Server.MaxBodySizeMB)
	layoutHandler := layout.NewHandler(layout.NewService(layouts), cfg.Server.MaxBodySizeMB)

	// 7. Initialize Server
	srv := server.New(cfg.Server.Addr(), health, cfg.Server.Mode)
	if promMetrics != nil {
		promMetrics.RegisterRoutes(srv.Engine, cfg.Telemetry.Path)
	}

	api := srv.Engine.Group(cfg.Server.BasePath)
	api.Use(auth.Middleware(cfg.Auth.JWTSecret))
	metricsHandler.RegisterRoutes(api)
	registry.RegisterRoutes(api)
	layoutHandler.RegisterRoutes(api)

	// 8. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}
