// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

// Command api is the entry point for the GrossStore dashboard API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (session records).
//  4. Seed the in-memory identity directory and product catalog.
//  5. Wire HTTP handlers.
//  6. Start the live sampler and the HTTP server with graceful shutdown.
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

	"github.com/grossstore/grossstore/internal/api"
	"github.com/grossstore/grossstore/internal/auth"
	"github.com/grossstore/grossstore/internal/inventory"
	"github.com/grossstore/grossstore/internal/platform/config"
	"github.com/grossstore/grossstore/internal/platform/constants"
	redisstore "github.com/grossstore/grossstore/internal/platform/redis"
	"github.com/grossstore/grossstore/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[GrossStore] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Duration("mock_latency", cfg.MockLatency()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 5. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckSessionBackend: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	// Both stores of record are in-memory and reset on restart; only the
	// session records in Redis survive.
	seedUsers, err := auth.SeedUsers()
	must(log, err, "seed identity directory")

	userRepository := auth.NewMemoryUserRepository(cfg.MockLatency(), seedUsers...)
	sessionRepository := auth.NewSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	catalog := inventory.NewMemoryRepository(
		cfg.MockLatency(), inventory.SeedProducts(), inventory.SeedActivity())
	inventoryService := inventory.NewService(catalog)
	liveSampler := inventory.NewLiveSampler(inventoryService, cfg.LiveSampleInterval, log)
	inventoryHandler := inventory.NewHandler(inventoryService, liveSampler)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Inventory: inventoryHandler,
	}

	// serveCtx outlives startup; canceling it stops the rate-limit cleanup
	// and the live sampler.
	serveCtx, serveCancel := context.WithCancel(context.Background())
	defer serveCancel()

	server := api.NewServer(serveCtx, cfg, log, jwtSvc, authService, handlers)

	liveSampler.Start(serveCtx)

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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	serveCancel()

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
