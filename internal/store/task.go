package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors wrapped in ErrInvalidEntity if the task
	// data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, regardless of owner.
	// Ownership is the service layer's decision; the store only reports
	// whether the row exists. Returns ErrTaskNotFound if it does not.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update replaces the mutable fields of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List executes a validated task query and returns one page of matching
	// tasks together with the total number of rows matching the same
	// predicate, so pagination metadata is always consistent with the data.
	List(ctx context.Context, query domain.TaskQuery) ([]*domain.Task, int, error)
}
