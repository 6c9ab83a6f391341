// Package main implements the entry point for the taskdeck API server,
// a small task-tracking service backed by PostgreSQL.
package main

import (
	"context"
	"log"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// run wires configuration, logging, storage, and the HTTP server, and
// blocks until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, err := logger.Setup(cfg.Server)
	if err != nil {
		return err
	}

	lg.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"time_zone", cfg.Display.TimeZone)

	app, err := newApplication(cfg, lg)
	if err != nil {
		return err
	}
	defer app.cleanup()

	if err := app.runMigrations(context.Background()); err != nil {
		return err
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
