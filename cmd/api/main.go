// Package main is the entry point for the envelope ledger API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/envelope-ledger/backend/config"
	"github.com/envelope-ledger/backend/internal/infra/db"
	"github.com/envelope-ledger/backend/internal/infra/dependency"
	"github.com/envelope-ledger/backend/internal/integration/cache"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting envelope ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"dbDriver", cfg.Database.Driver,
	)

	// Initialize database connection
	database, err := db.Open(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Prepare(context.Background(), cfg.Ledger.SeedFile); err != nil {
		slog.Error("Failed to prepare database", "error", err)
		os.Exit(1)
	}

	opts := dependency.Options{DBHealth: database.HealthCheck}

	// The aggregate cache is optional; the ledger runs without it.
	if cfg.Redis.URL != "" {
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, running without aggregate cache", "error", err)
		} else {
			defer func() {
				if err := client.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
			redisCache := cache.NewRedisAggregateCache(client, cfg.Redis.CacheTTL)
			opts.Cache = redisCache
			opts.CacheHealth = redisCache.HealthCheck
		}
	}

	injector := dependency.NewInjector(cfg, database.DB(), opts)
	engine := injector.Router.Setup(cfg.Server.Environment)

	stopCleanup := make(chan struct{})
	injector.RateLimiter.StartCleanup(stopCleanup)
	defer close(stopCleanup)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}
