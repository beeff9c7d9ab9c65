package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/internal/metrics"
	"github.com/segyhp/budget-planner/internal/repository"
	customError "github.com/segyhp/budget-planner/pkg/errors"
	"github.com/segyhp/budget-planner/pkg/utils"
)

var (
	validStatuses   = map[string]bool{domain.TaskStatusPending: true, domain.TaskStatusInProgress: true, domain.TaskStatusCompleted: true, domain.TaskStatusOverdue: true}
	validPriorities = map[string]bool{domain.TaskPriorityLow: true, domain.TaskPriorityMedium: true, domain.TaskPriorityHigh: true}
	validChannels   = map[string]bool{domain.AlertChannelApp: true, domain.AlertChannelEmail: true, domain.AlertChannelSMS: true}
)

type TaskService struct {
	TaskRepo  repository.TaskRepository
	AlertRepo repository.AlertRepository
	notifier  Notifier
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewTaskService wires the task service. A nil notifier falls back to LogNotifier.
func NewTaskService(
	taskRepo repository.TaskRepository,
	alertRepo repository.AlertRepository,
	notifier Notifier,
	m *metrics.Metrics,
) *TaskService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &TaskService{
		TaskRepo:  taskRepo,
		AlertRepo: alertRepo,
		notifier:  notifier,
		metrics:   m,
		now:       time.Now,
	}
}

// List processes the caller's reminders, then returns their tasks
func (s *TaskService) List(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error) {
	if _, err := s.ProcessTaskAlerts(ctx, &userID, s.now()); err != nil {
		slog.Warn("Task alert processing failed", "user_id", userID, "error", err)
	}

	tasks, err := s.TaskRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// Create stores a new task for the caller
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, request *domain.CreateTaskRequest) (*domain.Task, error) {
	task := &domain.Task{
		ID:                 uuid.New(),
		UserID:             userID,
		Title:              request.Title,
		Description:        request.Description,
		DueDate:            normalizeDueDate(request.DueDate),
		Priority:           withDefault(request.Priority, domain.TaskPriorityMedium),
		Status:             withDefault(request.Status, domain.TaskStatusPending),
		AlertOffsetMinutes: request.AlertOffsetMinutes,
		AlertChannel:       withDefault(request.AlertChannel, domain.AlertChannelApp),
		AlertEmail:         request.AlertEmail,
		AlertPhone:         request.AlertPhone,
		CreatedAt:          s.now(),
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}
	task.SyncCompletion()

	if err := s.TaskRepo.Create(ctx, task); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return task, nil
}

// Update applies a partial update to one of the caller's tasks
func (s *TaskService) Update(ctx context.Context, userID, taskID uuid.UUID, request *domain.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.TaskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapTaskNotFound(taskID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	applyTaskUpdate(task, request)
	if err := validateTask(task); err != nil {
		return nil, err
	}
	task.SyncCompletion()

	if err := s.TaskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapTaskNotFound(taskID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return task, nil
}

// Delete removes one of the caller's tasks
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.TaskRepo.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapTaskNotFound(taskID.String())
		}
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// ProcessTaskAlerts marks past-due tasks overdue and raises the reminders
// that became due by now. userID nil processes every user. It returns the
// number of reminders delivered through email or sms.
//
// A task is marked alerted before anything is sent or stored, so a failed
// write never leads to a duplicate reminder on the next sweep. Failures on one
// task are logged and the sweep moves on to the next.
func (s *TaskService) ProcessTaskAlerts(ctx context.Context, userID *uuid.UUID, now time.Time) (int, error) {
	tasks, err := s.TaskRepo.ListOpenWithDueDate(ctx, userID)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	delivered := 0
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}

		if utils.IsBeforeDay(*task.DueDate, now) && task.Status != domain.TaskStatusOverdue {
			if err := s.TaskRepo.MarkOverdue(ctx, task.ID); err != nil {
				slog.Error("Failed to mark task overdue", "task_id", task.ID, "error", err)
			} else {
				task.Status = domain.TaskStatusOverdue
			}
		}

		if task.AlertOffsetMinutes == nil {
			continue
		}
		notifyAt := utils.NotifyAt(*task.DueDate, *task.AlertOffsetMinutes)
		if now.Before(notifyAt) {
			continue
		}
		if task.LastAlertedAt != nil && !task.LastAlertedAt.Before(notifyAt) {
			continue
		}

		if err := s.TaskRepo.MarkAlerted(ctx, task.ID, now); err != nil {
			slog.Error("Failed to record task reminder", "task_id", task.ID, "error", err)
			continue
		}

		sent, destination := s.deliver(ctx, task)
		if sent {
			delivered++
		}
		if err := s.raiseAlert(ctx, task, destination); err != nil {
			slog.Error("Failed to store task alert", "task_id", task.ID, "error", err)
		}
	}

	return delivered, nil
}

// deliver attempts the external channel of a task. destination is the
// suffix describing where the reminder went.
func (s *TaskService) deliver(ctx context.Context, task *domain.Task) (bool, string) {
	due := task.DueDate.Format(time.DateOnly)

	var (
		target, label, subject, message string
	)
	switch {
	case task.AlertChannel == domain.AlertChannelSMS && task.AlertPhone != nil && *task.AlertPhone != "":
		target, label = *task.AlertPhone, "SMS"
		message = fmt.Sprintf("Task reminder: %s due %s", task.Title, due)
	case task.AlertChannel == domain.AlertChannelEmail && task.AlertEmail != nil && *task.AlertEmail != "":
		target, label = *task.AlertEmail, "email"
		subject = "Task reminder"
		message = fmt.Sprintf("Your task '%s' is due %s.", task.Title, due)
	case task.AlertChannel != domain.AlertChannelApp && task.AlertChannel != "":
		return false, " (delivery not configured)"
	default:
		return false, ""
	}

	err := s.notifier.Notify(ctx, task.AlertChannel, target, subject, message)
	s.metrics.ObserveAlert(task.AlertChannel, err == nil)
	if err != nil {
		slog.Warn("Reminder delivery failed", "task_id", task.ID, "channel", task.AlertChannel, "error", err)
	}
	return err == nil, fmt.Sprintf(" via %s to %s", label, target)
}

func (s *TaskService) raiseAlert(ctx context.Context, task *domain.Task, destination string) error {
	level := domain.AlertLevelInfo
	if task.Status == domain.TaskStatusOverdue {
		level = domain.AlertLevelWarning
	}

	alert := &domain.Alert{
		ID:        uuid.New(),
		UserID:    task.UserID,
		Year:      task.DueDate.Year(),
		Month:     int(task.DueDate.Month()),
		Code:      domain.AlertCodeTask,
		Level:     level,
		Message:   fmt.Sprintf("Task alert: '%s' due %s%s", task.Title, task.DueDate.Format(time.DateOnly), destination),
		CreatedAt: s.now(),
	}
	if err := s.AlertRepo.Create(ctx, alert); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

func applyTaskUpdate(task *domain.Task, request *domain.UpdateTaskRequest) {
	if request.Title != nil {
		task.Title = *request.Title
	}
	if request.Description != nil {
		task.Description = request.Description
	}
	if request.DueDate != nil {
		task.DueDate = normalizeDueDate(request.DueDate)
	}
	if request.Priority != nil {
		task.Priority = *request.Priority
	}
	if request.AlertOffsetMinutes != nil {
		task.AlertOffsetMinutes = request.AlertOffsetMinutes
	}
	if request.AlertChannel != nil {
		task.AlertChannel = *request.AlertChannel
	}
	if request.AlertEmail != nil {
		task.AlertEmail = request.AlertEmail
	}
	if request.AlertPhone != nil {
		task.AlertPhone = request.AlertPhone
	}

	// An explicit status wins over the stored completion flag, and reopening
	// a completed task without a status puts it back to pending.
	switch {
	case request.Status != nil:
		task.Status = *request.Status
		task.IsCompleted = *request.Status == domain.TaskStatusCompleted
		if request.IsCompleted != nil && *request.IsCompleted {
			task.IsCompleted = true
		}
	case request.IsCompleted != nil:
		task.IsCompleted = *request.IsCompleted
		if !task.IsCompleted && task.Status == domain.TaskStatusCompleted {
			task.Status = domain.TaskStatusPending
		}
	}
}

func validateTask(task *domain.Task) error {
	if !validStatuses[task.Status] {
		return customError.WrapInvalidTaskField("status", task.Status)
	}
	if !validPriorities[task.Priority] {
		return customError.WrapInvalidTaskField("priority", task.Priority)
	}
	if !validChannels[task.AlertChannel] {
		return customError.WrapInvalidTaskField("alert_channel", task.AlertChannel)
	}
	if task.AlertOffsetMinutes != nil && *task.AlertOffsetMinutes < 0 {
		return customError.WrapInvalidTaskField("alert_offset_minutes", fmt.Sprint(*task.AlertOffsetMinutes))
	}
	return nil
}

func normalizeDueDate(d *domain.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	day := d.Day()
	return &day
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
