package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service/task"
)

// TaskHandler handles task-related HTTP requests. Every endpoint runs
// behind the auth middleware, so a resolved user is always present in the
// request context.
type TaskHandler struct {
	taskService task.TaskService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService task.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests.
// Filter, sort and pagination parameters are read off the query string and
// handed to the service raw; the query builder decides what is valid.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	q := r.URL.Query()
	params := domain.TaskQueryParams{
		Completed: q.Get("completed"),
		Search:    q.Get("search"),
		Priority:  q.Get("priority"),
		SortBy:    q.Get("sortBy"),
		Order:     q.Get("order"),
		Page:      q.Get("page"),
		Limit:     q.Get("limit"),
	}

	result, err := h.taskService.List(r.Context(), user.ID, params)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Items: result.Tasks,
		Count: len(result.Tasks),
		Total: result.Total,
		Page:  result.Page,
		Pages: result.Pages,
	})
}

// CreateTask handles POST /tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, ok := currentUser(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req CreateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	created, err := h.taskService.Create(
		r.Context(),
		user.ID,
		req.Title,
		req.Description,
		domain.Priority(req.Priority),
		req.DueDate,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("task created",
		slog.String("task_id", created.ID.String()),
		slog.String("user_id", user.ID.String()))

	RespondWithJSON(w, r, http.StatusCreated, created)
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	user, taskID, ok := h.userAndTaskID(w, r)
	if !ok {
		return
	}

	fetched, err := h.taskService.Get(r.Context(), user.ID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, fetched)
}

// UpdateTask handles PUT /tasks/{id} requests with partial update
// semantics: only the fields present in the body are changed.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user, taskID, ok := h.userAndTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		update.Priority = &p
	}

	updated, err := h.taskService.Update(r.Context(), user.ID, taskID, update)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, updated)
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, taskID, ok := h.userAndTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), user.ID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", user.ID.String()))

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{})
}

// userAndTaskID extracts the authenticated user and the {id} path parameter,
// writing the error response itself when either is missing or malformed.
func (h *TaskHandler) userAndTaskID(w http.ResponseWriter, r *http.Request) (*domain.User, uuid.UUID, bool) {
	user, ok := currentUser(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return nil, uuid.Nil, false
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, uuid.Nil, false
	}

	return user, taskID, true
}
