package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// The default implementation keeps tasks in a map and executes query plans
// in memory, mirroring the semantics of the postgres implementation closely
// enough for service- and handler-level tests: mandatory owner scope,
// literal substring search, single-column sort, offset pagination, and a
// total computed from the same filtered set as the page.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
	ListFn    func(ctx context.Context, query domain.TaskQuery) ([]*domain.Task, int, error)

	// Data for default implementation
	Tasks map[uuid.UUID]*domain.Task

	// Forced error for default implementations
	Err error
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the store.TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.Err != nil {
		return m.Err
	}

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// GetByID implements the store.TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// Update implements the store.TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}
	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// Delete implements the store.TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// List implements the store.TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, query domain.TaskQuery) ([]*domain.Task, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, query)
	}
	if m.Err != nil {
		return nil, 0, m.Err
	}

	var matched []*domain.Task
	for _, task := range m.Tasks {
		if task.UserID != query.OwnerID {
			continue
		}
		if query.Completed != nil && task.Completed != *query.Completed {
			continue
		}
		if query.Search != "" &&
			!strings.Contains(strings.ToLower(task.Title), strings.ToLower(query.Search)) {
			continue
		}
		if query.Priority != "" && task.Priority != query.Priority {
			continue
		}
		copied := *task
		matched = append(matched, &copied)
	}

	sortTasks(matched, query)

	total := len(matched)
	start := query.Offset()
	if start > total {
		start = total
	}
	end := start + query.Limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

// sortTasks orders the matched set the way the query plan asks for.
func sortTasks(tasks []*domain.Task, query domain.TaskQuery) {
	less := func(a, b *domain.Task) bool {
		switch query.SortBy {
		case domain.SortByTitle:
			return a.Title < b.Title
		case domain.SortByPriority:
			return a.Priority < b.Priority
		case domain.SortByDueDate:
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if query.Order == domain.SortAsc {
			return less(tasks[i], tasks[j])
		}
		return less(tasks[j], tasks[i])
	})
}
