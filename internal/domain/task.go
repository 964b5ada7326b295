package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task field bounds.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Task validation errors.
var (
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner     = errors.New("task owner cannot be empty")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title cannot exceed 200 characters")
	ErrDescriptionTooLong = errors.New("description cannot exceed 1000 characters")
	ErrInvalidPriority    = errors.New("priority must be low, medium, or high")
)

// Priority is the urgency level of a task.
type Priority string

// Valid priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority converts a raw string into a Priority.
// Returns ErrInvalidPriority for anything outside the enum.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	default:
		return "", ErrInvalidPriority
	}
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single task record owned by one user.
//
// UserID is assigned exactly once, at creation, from the authenticated
// identity of the creating request. It is never read from client input and
// never changes afterwards.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// An empty priority defaults to medium. Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description string, priority Priority, dueDate *time.Time) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Completed:   false,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(t.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// IsOwnedBy reports whether the task belongs to the given user.
// This is the single ownership rule the service layer enforces on every
// read, update and delete.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

// TaskUpdate carries a partial update to a task. Nil fields are left
// untouched; present fields replace the current value.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
	DueDate     *time.Time
}

// Apply mutates the task with the fields present in the update, bumps the
// update timestamp, and re-validates the result. The owner and creation
// timestamp are not touched under any input.
func (u TaskUpdate) Apply(t *Task) error {
	if u.Title != nil {
		t.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		t.Description = strings.TrimSpace(*u.Description)
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.DueDate != nil {
		t.DueDate = u.DueDate
	}
	t.UpdatedAt = time.Now().UTC()

	return t.Validate()
}
