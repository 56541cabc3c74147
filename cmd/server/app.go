package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ledgerline/taskboard-api/internal/config"
	"github.com/ledgerline/taskboard-api/internal/events"
	"github.com/ledgerline/taskboard-api/internal/platform/postgres"
	"github.com/ledgerline/taskboard-api/internal/platform/userdir"
	"github.com/ledgerline/taskboard-api/internal/service"
	"github.com/ledgerline/taskboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore     store.TaskStore
	userDirectory store.UserDirectory

	taskService service.TaskService
	userService service.UserService

	eventEmitter events.Emitter
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logging, and the database connection must be
// established by the caller.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.taskStore = postgres.NewTaskStore(db, logger)

	var err error
	if cfg.Users.DirectoryFile != "" {
		app.userDirectory, err = userdir.NewFromFile(cfg.Users.DirectoryFile, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load user directory: %w", err)
		}
	} else {
		app.userDirectory = userdir.NewWithSampleUsers(logger)
	}

	emitter := events.NewInMemoryEmitter(logger)
	emitter.RegisterHandler(events.NewLoggingHandler(logger))
	app.eventEmitter = emitter

	taskRepo := service.NewTaskRepositoryAdapter(app.taskStore, db)

	app.taskService, err = service.NewTaskService(
		taskRepo,
		app.userDirectory,
		app.eventEmitter,
		logger,
		cfg.Tasks.MaxOpenPerUser,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.userService, err = service.NewUserService(app.userDirectory, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
