package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/redact"

	// Register the pgx driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// setupDatabase establishes a connection to the database and configures
// connection pools. Returns the database connection if successful, or an
// error if the connection fails.
func setupDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %s", redact.Error(err))
	}

	// Configure connection pool with reasonable defaults
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}

	logger.Info("Database connection established")
	return db, nil
}
