// Package task implements the task service: owner-scoped CRUD and list
// operations over the task store, with the ownership guard applied on every
// path that touches an existing task.
package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// Common error types for TaskService
var (
	// ErrTaskNotFound indicates that the task does not exist at all.
	// Handlers map this to 404.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotOwned indicates the task exists but belongs to another user.
	// Handlers map this to 403. It must never be collapsed into
	// ErrTaskNotFound: probing a nonexistent ID and probing another user's
	// ID are deliberately distinguishable outcomes.
	ErrTaskNotOwned = errors.New("unauthorized access: task not owned by user")
)

// ListResult is one page of tasks together with the pagination metadata
// computed from the same predicate that produced the page.
type ListResult struct {
	Tasks []*domain.Task
	Total int
	Page  int
	Limit int
	Pages int
}

// TaskService provides owner-scoped task operations. Every method takes the
// authenticated user's ID as resolved by the auth middleware; none of them
// trust identity information from the request body.
type TaskService interface {
	// Create makes a new task owned by userID. The owner is assigned here,
	// from the authenticated identity, and is immutable afterwards.
	Create(ctx context.Context, userID uuid.UUID, title, description string, priority domain.Priority, dueDate *time.Time) (*domain.Task, error)

	// Get returns the task with the given ID if it is owned by userID.
	// Returns ErrTaskNotFound if no such task exists, ErrTaskNotOwned if it
	// exists under a different owner.
	Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// Update applies a partial update to an owned task and returns the
	// updated record. Same not-found/not-owned contract as Get.
	Update(ctx context.Context, userID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)

	// Delete removes an owned task. Same not-found/not-owned contract as Get.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// List builds a validated query plan from the raw parameters, scoped to
	// userID, executes it, and returns the page plus pagination metadata.
	List(ctx context.Context, userID uuid.UUID, params domain.TaskQueryParams) (*ListResult, error)
}
