package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Bound every request by the configured store query timeout so a slow
	// database surfaces as an error instead of a hung connection.
	if app.config.Database.QueryTimeoutSeconds > 0 {
		r.Use(middleware.Timeout(
			time.Duration(app.config.Database.QueryTimeoutSeconds) * time.Second,
		))
	}

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.logger,
	)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Get("/{id}", taskHandler.GetTask)
				r.Put("/{id}", taskHandler.UpdateTask)
				r.Delete("/{id}", taskHandler.DeleteTask)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
