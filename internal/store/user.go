package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// The user must already carry a hashed password; Create rejects users
	// whose plaintext Password field is still populated, so a plaintext
	// credential can never reach the database by accident.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user never contains a plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their (case-normalized) email address.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user carries the password hash for credential checks.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
