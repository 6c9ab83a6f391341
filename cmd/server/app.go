package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service/settings"
	"github.com/taskdeck/taskdeck-api/internal/service/tasks"
)

// application holds the wired dependencies for the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskService *tasks.Service
	settings    *settings.Resolver
}

// newApplication connects to the database and builds the service graph.
func newApplication(cfg *config.Config, lg *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, lg)
	if err != nil {
		return nil, err
	}

	taskStore := postgres.NewTaskStore(db, lg)
	settingsStore := postgres.NewSettingsStore(db, lg)

	taskService, err := tasks.NewService(taskStore, cfg.Display, lg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to build task service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      lg,
		db:          db,
		taskService: taskService,
		settings:    settings.NewResolver(settingsStore, lg),
	}, nil
}

// cleanup releases resources held by the application. Safe to call more
// than once.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
		app.db = nil
	}
}
