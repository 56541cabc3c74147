// Package main implements the entry point for the taskboard API server,
// which tracks tasks for accounting teams against an external user
// directory.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/ledgerline/taskboard-api/internal/config"
	"github.com/ledgerline/taskboard-api/internal/platform/logger"
)

// main initializes configuration, logging, the database, and all services,
// then runs the HTTP server until it receives a shutdown signal.
func main() {
	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()

	db, err := setupAppDatabase(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to set up database", "error", err)
		log.Fatalf("Failed to set up database: %v", err)
	}

	if err := runMigrations(ctx, db, appLogger); err != nil {
		appLogger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		appLogger.Error("Failed to build application", "error", err)
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		log.Fatalf("Server exited with error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"rate_limit_enabled", cfg.RateLimit.Enabled,
		"max_open_tasks_per_user", cfg.Tasks.MaxOpenPerUser)

	return cfg, appLogger, nil
}
