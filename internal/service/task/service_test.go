package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
)

// seedTask creates a task owned by ownerID directly in the mock store.
func seedTask(t *testing.T, ts *mocks.MockTaskStore, ownerID uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(ownerID, title, "", "", nil)
	require.NoError(t, err)
	require.NoError(t, ts.Create(context.Background(), task))
	return task
}

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates task owned by the given user", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		ownerID := uuid.New()
		due := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

		task, err := svc.Create(context.Background(), ownerID, "Ship release", "cut the tag", domain.PriorityHigh, &due)
		require.NoError(t, err)

		assert.Equal(t, ownerID, task.UserID)
		assert.Equal(t, "Ship release", task.Title)
		assert.False(t, task.Completed)
		assert.Len(t, ts.Tasks, 1)
	})

	t.Run("rejects invalid input before touching the store", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)

		_, err := svc.Create(context.Background(), uuid.New(), "", "", "", nil)
		require.ErrorIs(t, err, domain.ErrEmptyTitle)
		assert.Empty(t, ts.Tasks)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		ts.Err = errors.New("connection reset")
		svc := NewTaskService(ts, nil)

		_, err := svc.Create(context.Background(), uuid.New(), "Task", "", "", nil)
		require.Error(t, err)
	})
}

func TestTaskServiceGet(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	strangerID := uuid.New()

	t.Run("returns an owned task", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		seeded := seedTask(t, ts, ownerID, "Mine")

		task, err := svc.Get(context.Background(), ownerID, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, task.ID)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)

		_, err := svc.Get(context.Background(), ownerID, uuid.New())
		require.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("another user's task is not owned, never not found", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		seeded := seedTask(t, ts, ownerID, "Mine")

		_, err := svc.Get(context.Background(), strangerID, seeded.ID)
		require.ErrorIs(t, err, ErrTaskNotOwned)
		assert.NotErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	strangerID := uuid.New()

	t.Run("applies a partial update", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		seeded := seedTask(t, ts, ownerID, "Before")

		completed := true
		updated, err := svc.Update(context.Background(), ownerID, seeded.ID, domain.TaskUpdate{Completed: &completed})
		require.NoError(t, err)

		assert.True(t, updated.Completed)
		assert.Equal(t, "Before", updated.Title)
		assert.Equal(t, ownerID, updated.UserID)

		stored, err := ts.GetByID(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.True(t, stored.Completed)
	})

	t.Run("rejects update of another user's task", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		seeded := seedTask(t, ts, ownerID, "Someone else's")

		completed := true
		_, err := svc.Update(context.Background(), strangerID, seeded.ID, domain.TaskUpdate{Completed: &completed})
		require.ErrorIs(t, err, ErrTaskNotOwned)

		// Unchanged in the store
		stored, err := ts.GetByID(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.False(t, stored.Completed)
	})

	t.Run("rejects invalid updated fields", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		seeded := seedTask(t, ts, ownerID, "Valid")

		empty := ""
		_, err := svc.Update(context.Background(), ownerID, seeded.ID, domain.TaskUpdate{Title: &empty})
		require.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)

		completed := true
		_, err := svc.Update(context.Background(), ownerID, uuid.New(), domain.TaskUpdate{Completed: &completed})
		require.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	strangerID := uuid.New()

	t.Run("deletes an owned task", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		seeded := seedTask(t, ts, ownerID, "Done with this")

		require.NoError(t, svc.Delete(context.Background(), ownerID, seeded.ID))
		assert.Empty(t, ts.Tasks)
	})

	t.Run("refuses to delete another user's task", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		seeded := seedTask(t, ts, ownerID, "Keep out")

		err := svc.Delete(context.Background(), strangerID, seeded.ID)
		require.ErrorIs(t, err, ErrTaskNotOwned)
		assert.Len(t, ts.Tasks, 1)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)

		err := svc.Delete(context.Background(), ownerID, uuid.New())
		require.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestTaskServiceList(t *testing.T) {
	t.Parallel()

	t.Run("lists only the caller's tasks", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		ownerID := uuid.New()
		otherID := uuid.New()

		seedTask(t, ts, ownerID, "mine one")
		seedTask(t, ts, ownerID, "mine two")
		seedTask(t, ts, otherID, "not mine")

		result, err := svc.List(context.Background(), ownerID, domain.TaskQueryParams{})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Total)
		assert.Len(t, result.Tasks, 2)
		for _, task := range result.Tasks {
			assert.Equal(t, ownerID, task.UserID)
		}
	})

	t.Run("pagination metadata comes from the filtered total", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		ownerID := uuid.New()

		seedTask(t, ts, ownerID, "first")
		seedTask(t, ts, ownerID, "second")

		result, err := svc.List(context.Background(), ownerID, domain.TaskQueryParams{Page: "1", Limit: "1"})
		require.NoError(t, err)

		assert.Len(t, result.Tasks, 1)
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 1, result.Limit)
		assert.Equal(t, 2, result.Pages)
	})

	t.Run("page beyond the data is empty but keeps the total", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)
		ownerID := uuid.New()

		seedTask(t, ts, ownerID, "only one")

		result, err := svc.List(context.Background(), ownerID, domain.TaskQueryParams{Page: "5", Limit: "10"})
		require.NoError(t, err)

		assert.Empty(t, result.Tasks)
		assert.Equal(t, 1, result.Total)
		assert.Equal(t, 5, result.Page)
	})

	t.Run("invalid parameters are rejected", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		svc := NewTaskService(ts, nil)

		_, err := svc.List(context.Background(), uuid.New(), domain.TaskQueryParams{Priority: "urgent"})
		require.ErrorIs(t, err, domain.ErrInvalidQuery)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		t.Parallel()
		ts := mocks.NewMockTaskStore()
		ts.Err = errors.New("query timeout")
		svc := NewTaskService(ts, nil)

		_, err := svc.List(context.Background(), uuid.New(), domain.TaskQueryParams{})
		require.Error(t, err)
	})
}
