// Package main implements the entry point for the tasks API server,
// a multi-tenant task tracker with JWT-based authentication.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command (up, down, status, version) and exit",
	)
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

// run loads configuration, sets up logging, and either executes a
// migration command or starts the HTTP server. Split out from main so
// failures flow back as errors instead of os.Exit scattered around.
func run(migrateCmd string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if migrateCmd != "" {
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				appLogger.Error("Error closing database connection", "error", closeErr)
			}
		}()
		return runMigrationCommand(ctx, db, migrateCmd)
	}

	// Pending migrations are applied on every normal startup so the schema
	// can never drift behind the binary serving requests.
	if err := applyMigrations(ctx, db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// Hostname reported in startup logs; unavailable hostname is not fatal.
func serverHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
