package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ledgerline/taskboard-api/internal/api"
	apiMiddleware "github.com/ledgerline/taskboard-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	if app.config.RateLimit.Enabled {
		limiter := apiMiddleware.NewRateLimiter(
			app.config.RateLimit.RequestsPerMin,
			app.config.RateLimit.Window,
			[]string{"/health"},
			app.logger,
		)
		r.Use(limiter.Handler)
	}

	taskHandler := api.NewTaskHandler(app.taskService)
	userHandler := api.NewUserHandler(app.userService)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.CreateTask)
			r.Get("/users/{userID}", taskHandler.ListTasksByUser)
			r.Put("/{taskID}/complete", taskHandler.CompleteTask)
			r.Put("/{taskID}/start", taskHandler.StartTask)
			r.Put("/{taskID}/cancel", taskHandler.CancelTask)
			r.Patch("/{taskID}", taskHandler.UpdateTask)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Put("/{userID}/activate", userHandler.ActivateUser)
			r.Put("/{userID}/deactivate", userHandler.DeactivateUser)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
