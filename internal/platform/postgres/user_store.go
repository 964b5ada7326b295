package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It refuses users that still carry a plaintext password: hashing is an
// explicit step owned by the registration flow, and no code path may persist
// an unhashed credential.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.HashedPassword == "" {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyHashedPassword)
	}
	if user.Password != "" {
		return fmt.Errorf("%w: plaintext password must be cleared before persistence", store.ErrInvalidEntity)
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO users (id, name, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.HashedPassword,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to insert user",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.UserStore.GetByID
// The query projection deliberately excludes nothing but the plaintext
// password (which is never stored); the hash is loaded so callers that need
// credential checks can use it, and JSON serialization always omits it.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, name, email, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.UserStore.GetByEmail
// The lookup is case-insensitive because emails are normalized to lower
// case before storage.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
}

// scanUser maps a single user row into a domain.User, translating
// sql.ErrNoRows into store.ErrUserNotFound.
func (s *PostgresUserStore) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	return &user, nil
}
