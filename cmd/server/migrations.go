package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ledgerline/taskboard-api/migrations"
	"github.com/pressly/goose/v3"
)

// runMigrations applies all pending migrations from the embedded filesystem.
// The server refuses to start if the schema cannot be brought up to date.
func runMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("Database migrations applied", "version", version)
	return nil
}
