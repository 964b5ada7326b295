package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// sortColumns maps the allow-listed sort fields to real column names.
// Client-supplied sort strings never reach the SQL text; only values from
// this fixed table are interpolated into ORDER BY.
var sortColumns = map[domain.SortField]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByTitle:     "title",
	domain.SortByPriority:  "priority",
	domain.SortByDueDate:   "due_date",
}

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, completed, priority, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `
		SELECT id, user_id, title, description, completed, priority, due_date, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, id)

	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}

	return task, nil
}

// Update implements store.TaskStore.Update
// It replaces every mutable column; partial-update semantics are resolved
// at the domain layer (TaskUpdate.Apply) before the row reaches the store.
// The owner column is deliberately absent from the SET list.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, priority = $4, due_date = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.DueDate,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return CheckRowsAffected(result, "task")
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return CheckRowsAffected(result, "task")
}

// List implements store.TaskStore.List
// The count and the page fetch are built from the same predicate, so the
// returned total always describes the same row set the page was cut from.
func (s *PostgresTaskStore) List(ctx context.Context, query domain.TaskQuery) ([]*domain.Task, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildTaskPredicate(query)

	var total int
	countSQL := "SELECT COUNT(*) FROM tasks " + where
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("user_id", query.OwnerID.String()),
			slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	orderCol, ok := sortColumns[query.SortBy]
	if !ok {
		// The builder guarantees an allow-listed sort field; an unknown one
		// here means a hand-constructed query, which we refuse to order by.
		orderCol = "created_at"
	}
	direction := "DESC"
	if query.Order == domain.SortAsc {
		direction = "ASC"
	}

	listSQL := fmt.Sprintf(
		`SELECT id, user_id, title, description, completed, priority, due_date, created_at, updated_at
		FROM tasks %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		where, orderCol, direction, len(args)+1, len(args)+2,
	)
	args = append(args, query.Limit, query.Offset())

	rows, err := s.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("user_id", query.OwnerID.String()),
			slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0, query.Limit)
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, 0, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	return tasks, total, nil
}

// buildTaskPredicate renders the WHERE clause for a task query. The owner
// scope is emitted first and unconditionally; every optional filter appends
// a parameterized condition. No client-supplied string is ever concatenated
// into the SQL text.
func buildTaskPredicate(query domain.TaskQuery) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{query.OwnerID}

	if query.Completed != nil {
		args = append(args, *query.Completed)
		conditions = append(conditions, fmt.Sprintf("completed = $%d", len(args)))
	}

	if query.Search != "" {
		args = append(args, "%"+escapeLikePattern(query.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	if query.Priority != "" {
		args = append(args, query.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// escapeLikePattern escapes LIKE/ILIKE metacharacters so a client-supplied
// search term is matched literally. Without this, a search for "%" would
// match every row and "_" would act as a single-character wildcard.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// scanTask maps one task row using the given scan function, which lets the
// same mapping serve both QueryRow and Rows iteration.
func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var task domain.Task
	err := scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.Priority,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
