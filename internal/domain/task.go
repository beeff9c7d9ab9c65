package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusOverdue    = "overdue"
)

// Task priorities
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Alert delivery channels
const (
	AlertChannelApp   = "app"
	AlertChannelEmail = "email"
	AlertChannelSMS   = "sms"
)

// Task represents a to-do item with optional reminder metadata
type Task struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	UserID             uuid.UUID  `json:"-" db:"user_id"`
	Title              string     `json:"title" db:"title"`
	Description        *string    `json:"description" db:"description"`
	DueDate            *time.Time `json:"due_date" db:"due_date"`
	Priority           string     `json:"priority" db:"priority"`
	Status             string     `json:"status" db:"status"`
	IsCompleted        bool       `json:"is_completed" db:"is_completed"`
	AlertOffsetMinutes *int       `json:"alert_offset_minutes" db:"alert_offset_minutes"`
	AlertChannel       string     `json:"alert_channel" db:"alert_channel"`
	AlertEmail         *string    `json:"alert_email" db:"alert_email"`
	AlertPhone         *string    `json:"alert_phone" db:"alert_phone"`
	LastAlertedAt      *time.Time `json:"last_alerted_at" db:"last_alerted_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// SyncCompletion keeps Status and IsCompleted consistent after an update.
func (t *Task) SyncCompletion() {
	if t.Status == TaskStatusCompleted || t.IsCompleted {
		t.Status = TaskStatusCompleted
		t.IsCompleted = true
		return
	}
	t.IsCompleted = false
}

type CreateTaskRequest struct {
	Title              string  `json:"title" validate:"required,max=140"`
	Description        *string `json:"description"`
	DueDate            *Date   `json:"due_date"`
	Priority           string  `json:"priority"`
	Status             string  `json:"status"`
	AlertOffsetMinutes *int    `json:"alert_offset_minutes" validate:"omitempty,gte=0"`
	AlertChannel       string  `json:"alert_channel"`
	AlertEmail         *string `json:"alert_email" validate:"omitempty,email"`
	AlertPhone         *string `json:"alert_phone" validate:"omitempty,max=40"`
}

// UpdateTaskRequest is a partial update; nil fields are left untouched.
type UpdateTaskRequest struct {
	Title              *string `json:"title" validate:"omitempty,min=1,max=140"`
	Description        *string `json:"description"`
	DueDate            *Date   `json:"due_date"`
	Priority           *string `json:"priority"`
	Status             *string `json:"status"`
	IsCompleted        *bool   `json:"is_completed"`
	AlertOffsetMinutes *int    `json:"alert_offset_minutes" validate:"omitempty,gte=0"`
	AlertChannel       *string `json:"alert_channel"`
	AlertEmail         *string `json:"alert_email" validate:"omitempty,email"`
	AlertPhone         *string `json:"alert_phone" validate:"omitempty,max=40"`
}

// TaskFilter narrows a task listing to a calendar month.
type TaskFilter struct {
	Year  int
	Month int
}

// HasMonth reports whether the filter selects a month.
func (f TaskFilter) HasMonth() bool {
	return f.Year > 0 && f.Month >= 1 && f.Month <= 12
}
