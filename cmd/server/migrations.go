package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/taskdeck/taskdeck-api/migrations"
)

// migrationTableName tracks applied migrations separately from application
// tables.
const migrationTableName = "schema_migrations"

// runMigrations applies any pending schema migrations from the embedded
// SQL files.
func (app *application) runMigrations(ctx context.Context) error {
	goose.SetLogger(&slogGooseLogger{logger: app.logger})
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrationTableName)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, app.db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app.logger.Info("schema migrations applied")
	return nil
}

// slogGooseLogger routes goose output through the structured logger.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
