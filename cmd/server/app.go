package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/service/task"
	"github.com/phrazzld/tasks-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	taskService      task.TaskService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"access_token_lifetime_minutes", cfg.Auth.AccessTokenLifetimeMinutes,
		"refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes)

	// Initialize password hashing
	app.passwordHasher = auth.NewBcryptHasher(bcrypt.DefaultCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Initialize the task service on top of the task store
	app.taskService = task.NewTaskService(app.taskStore, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
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
