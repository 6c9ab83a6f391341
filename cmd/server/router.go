package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/taskdeck/taskdeck-api/internal/api"
	apimiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
)

// setupRouter configures all routes and middleware for the server.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)
	r.Use(apimiddleware.NewIdentity(app.config.Auth.JWTSecret).Resolve)

	taskHandler := api.NewTaskHandler(app.taskService, app.settings)
	settingsHandler := api.NewSettingsHandler(app.settings)

	r.Get("/tasks", taskHandler.List)
	r.Post("/tasks", taskHandler.Create)
	r.Put("/tasks/{id}", taskHandler.Update)
	r.Patch("/tasks/{id}", taskHandler.Update)
	r.Delete("/tasks/{id}", taskHandler.Delete)

	r.Get("/settings", settingsHandler.Get)
	r.Put("/settings", settingsHandler.Put)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
