package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/migrations"
	"github.com/pressly/goose/v3"
)

// migrationTableName is the table goose uses to track applied migrations.
const migrationTableName = "schema_migrations"

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct{}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error
// messages to slog.Error. Unlike the standard Fatalf behavior, this does
// NOT call os.Exit so main can handle application exit consistently.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// configureGoose points goose at the embedded migration files.
func configureGoose() error {
	goose.SetLogger(&slogGooseLogger{})
	goose.SetTableName(migrationTableName)
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// applyMigrations brings the schema up to date on server startup.
func applyMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrationCommand(ctx, db, "up")
}

// runMigrationCommand executes a single goose command (up, down, status,
// version) against the embedded migrations. A correlation ID ties all log
// lines of one operation together.
func runMigrationCommand(ctx context.Context, db *sql.DB, command string) error {
	correlationID := uuid.New().String()
	migrationLogger := slog.Default().With(
		"correlation_id", correlationID,
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation",
		"operation", fmt.Sprintf("goose %s", command))

	if err := configureGoose(); err != nil {
		return err
	}

	switch command {
	case "up", "down", "status", "version":
		// Migration files live at the root of the embedded filesystem.
		if err := goose.RunContext(ctx, command, db, "."); err != nil {
			migrationLogger.Error("Migration operation failed",
				"error", err,
				"duration_ms", time.Since(startTime).Milliseconds())
			return fmt.Errorf("goose %s failed: %w", command, err)
		}
	default:
		return fmt.Errorf("unsupported migration command: %q", command)
	}

	migrationLogger.Info("Migration operation completed",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}
