package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ledgerline/taskboard-api/internal/api/shared"
	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/ledgerline/taskboard-api/internal/service"
)

// CreateTaskRequest is the request body for creating a task. Field-level
// validation (emptiness, length, allowed values) is the entity's job; the
// tags here only reject requests that are structurally unusable.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     int64  `json:"owner_id"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

// UpdateTaskRequest is the request body for editing a task's content.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// TaskResponse is the response shape for a single task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	OwnerID     int64      `json:"owner_id"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// TaskListResponse is the response shape for task listings.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	tasks service.TaskService
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondError(w, r, domain.NewValidationError(map[string]string{
			"body": "request body must be valid JSON",
		}))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondError(w, r, domain.NewValidationError(map[string]string{
			"priority": "priority must be one of: low, medium, high, urgent",
		}))
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		Priority:    domain.TaskPriority(req.Priority),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasksByUser handles GET /api/tasks/users/{userID}.
func (h *TaskHandler) ListTasksByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || ownerID <= 0 {
		respondError(w, r, domain.NewValidationError(map[string]string{
			"user_id": "user ID must be a positive integer",
		}))
		return
	}

	tasks, err := h.tasks.ListTasksByUser(r.Context(), ownerID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	response := TaskListResponse{Tasks: make([]TaskResponse, 0, len(tasks)), Count: len(tasks)}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, taskToResponse(task))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CompleteTask handles PUT /api/tasks/{taskID}/complete.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.tasks.CompleteTask)
}

// StartTask handles PUT /api/tasks/{taskID}/start.
func (h *TaskHandler) StartTask(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.tasks.StartTask)
}

// CancelTask handles PUT /api/tasks/{taskID}/cancel.
func (h *TaskHandler) CancelTask(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.tasks.CancelTask)
}

// UpdateTask handles PATCH /api/tasks/{taskID}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondError(w, r, domain.NewValidationError(map[string]string{
			"body": "request body must be valid JSON",
		}))
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

func (h *TaskHandler) applyTransition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, taskID uuid.UUID) (*domain.Task, error),
) {
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}
	task, err := fn(r.Context(), taskID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

func parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		respondError(w, r, domain.NewValidationError(map[string]string{
			"task_id": "task ID must be a valid UUID",
		}))
		return uuid.Nil, false
	}
	return taskID, true
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		OwnerID:     task.OwnerID,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		CompletedAt: task.CompletedAt,
	}
}
