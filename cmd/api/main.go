// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Dishly HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the relation store (PostgreSQL + migrations, or in-memory).
//  4. Connect to Redis when configured.
//  5. Configure object storage when configured.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/dishly/internal/api"
	"github.com/taibuivan/dishly/internal/library/collection"
	"github.com/taibuivan/dishly/internal/platform/config"
	"github.com/taibuivan/dishly/internal/platform/constants"
	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/migration"
	pgstore "github.com/taibuivan/dishly/internal/platform/postgres"
	redisstore "github.com/taibuivan/dishly/internal/platform/redis"
	"github.com/taibuivan/dishly/internal/platform/relstore"
	"github.com/taibuivan/dishly/internal/platform/relstore/memstore"
	"github.com/taibuivan/dishly/internal/platform/sec"
	"github.com/taibuivan/dishly/internal/platform/storage"
	"github.com/taibuivan/dishly/pkg/query"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var health api.HealthDependencies

	// ── 3. Relation Store ─────────────────────────────────────────────────
	var store relstore.Store
	if cfg.UsesPostgres() {
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		store = relstore.NewPostgresStore(pool)
		health.CheckDatabase = func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}
	} else {
		log.Warn("memory_store_enabled", slog.String("hint", "data is lost on restart"))
		store = memstore.New(memstore.WithUniqueKeys(schema.UniqueKeys()))
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	var cache collection.SystemCache
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		cache = collection.NewRedisSystemCache(rdb, cfg.SystemCollectionCacheTTL)
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 5. Object Storage ─────────────────────────────────────────────────
	var uploader storage.Uploader
	if cfg.HasObjectStorage() {
		s3Uploader, err := storage.NewS3UploaderFromConfig(startupCtx, cfg)
		must(log, err, "configure object storage")
		uploader = s3Uploader
	}

	// ── 6. Token Verification ─────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	handlers := api.NewHandlers(api.Dependencies{
		Store:              store,
		Logger:             log,
		Cache:              cache,
		Uploader:           uploader,
		ResyncOnModeration: cfg.ResyncOnModeration,
	}, health)

	server := api.NewServer(cfg, log, tokens, query.StringSlice(cfg.ExtraOrigins), handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, "dishly"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
