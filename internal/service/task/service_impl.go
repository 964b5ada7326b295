package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Verify interface compliance at compile time
var _ TaskService = (*taskServiceImpl)(nil)

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService implementation.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) TaskService {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	title, description string,
	priority domain.Priority,
	dueDate *time.Time,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(userID, title, description, priority, dueDate)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))

	return task, nil
}

// Get implements TaskService.Get.
func (s *taskServiceImpl) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.getOwned(ctx, userID, taskID)
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := update.Apply(task); err != nil {
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		if store.IsNotFoundError(err) {
			// Deleted between fetch and update; report it as missing.
			return nil, ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.getOwned(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		if store.IsNotFoundError(err) {
			return ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	log.Debug("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))

	return nil
}

// List implements TaskService.List.
func (s *taskServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	params domain.TaskQueryParams,
) (*ListResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, err := domain.NewTaskQuery(userID, params)
	if err != nil {
		return nil, err
	}

	tasks, total, err := s.taskStore.List(ctx, query)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &ListResult{
		Tasks: tasks,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
		Pages: query.Pages(total),
	}, nil
}

// getOwned fetches a task and applies the ownership guard. The order of
// checks is load-bearing: a missing row is ErrTaskNotFound, an existing row
// under another owner is ErrTaskNotOwned.
func (s *taskServiceImpl) getOwned(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if !task.IsOwnedBy(userID) {
		return nil, ErrTaskNotOwned
	}

	return task, nil
}
