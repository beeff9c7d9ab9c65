package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	customError "github.com/segyhp/budget-planner/pkg/errors"
	"github.com/segyhp/budget-planner/pkg/response"
)

type TaskService interface {
	List(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error)
	Create(ctx context.Context, userID uuid.UUID, request *domain.CreateTaskRequest) (*domain.Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, request *domain.UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

type TaskHandler struct {
	service   TaskService
	validator *validator.Validate
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// ListTasks handles GET /api/v1/tasks?year=&month=
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	year, month, ok := monthQuery(w, r)
	if !ok {
		return
	}
	filter := domain.TaskFilter{Year: year, Month: month}

	tasks, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		response.BusinessError(w, "Failed to list tasks", err)
		return
	}

	response.Success(w, tasks)
}

// CreateTask handles POST /api/v1/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.CreateTaskRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	task, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to create task", err)
		return
	}

	response.Created(w, task)
}

// UpdateTask handles PUT /api/v1/tasks/{taskId}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "taskId", customError.WrapTaskNotFound)
	if !ok {
		return
	}

	var req domain.UpdateTaskRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	task, err := h.service.Update(r.Context(), userID, taskID, &req)
	if err != nil {
		response.BusinessError(w, "Failed to update task", err)
		return
	}

	response.Success(w, task)
}

// DeleteTask handles DELETE /api/v1/tasks/{taskId}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "taskId", customError.WrapTaskNotFound)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, taskID); err != nil {
		response.BusinessError(w, "Failed to delete task", err)
		return
	}

	response.Success(w, map[string]string{"status": "ok"})
}
