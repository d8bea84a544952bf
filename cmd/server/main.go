package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DukeRupert/pagenav/internal"
	"github.com/DukeRupert/pagenav/internal/handler"
	"github.com/DukeRupert/pagenav/internal/metrics"
	"github.com/DukeRupert/pagenav/internal/middleware"
	"github.com/DukeRupert/pagenav/internal/storage"
)

// newStorage opens the configured item source. The returned cleanup releases
// any database handle.
func newStorage(ctx context.Context, cfg *internal.Config, logger *slog.Logger) (storage.Storage, func() error, error) {
	if cfg.Store == internal.StoreMemory {
		store, err := storage.NewMemoryStorage(cfg.DemoItemCount, logger)
		return store, func() error { return nil }, err
	}

	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	store, err := storage.NewPostgresStorage(ctx, db, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	if err := internal.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}

	if _, err := store.Seed(ctx, cfg.DemoItemCount); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("seeding failed: %w", err)
	}
	logger.Info("Database ready")

	return store, db.Close, nil
}

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	store, cleanup, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}
	defer cleanup()

	// Initialize middleware
	isSecure := cfg.Env != "development"
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	apiLimiter := middleware.NewRateLimiter(120, time.Minute)
	defer apiLimiter.Close()
	rateLimitMw := middleware.NewRateLimitMiddleware(apiLimiter, logger)

	// Initialize handlers
	pageHandler := handler.NewPageHandler(store, handler.PageConfig{
		ItemsPerPage:         cfg.ItemsPerPage,
		DefaultPage:          cfg.DefaultPage,
		MaxPagesToShow:       cfg.MaxPagesToShow,
		AlwaysShowPagination: cfg.AlwaysShowPagination,
		URLPattern:           cfg.URLPattern,
	}, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)

	if cfg.MetricsUsername == "" && cfg.MetricsPassword == "" {
		logger.Warn("Metrics endpoint is unprotected; set METRICS_USERNAME and METRICS_PASSWORD")
	}
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	pageHandler.RegisterRoutes(mux, rateLimitMw.Limit)

	// metrics.Middleware reads the matched pattern, so it must see the
	// request the mux routes
	root := middleware.Stack(
		middleware.RequestID,
		loggingMw.Handler,
		securityMw.Handler,
		metrics.Middleware,
	)(mux)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           root,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env, "store", cfg.Store)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
