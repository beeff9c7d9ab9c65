package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	AlertCodeTask = "TASK_ALERT"

	AlertLevelInfo    = "info"
	AlertLevelWarning = "warning"
	AlertLevelAlert   = "alert"
)

// Alert is an in-app notification
type Alert struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"-" db:"user_id"`
	CategoryID *uuid.UUID `json:"category_id" db:"category_id"`
	Year       int        `json:"year" db:"year"`
	Month      int        `json:"month" db:"month"`
	Code       string     `json:"code" db:"code"`
	Level      string     `json:"level" db:"level"`
	Message    string     `json:"message" db:"message"`
	IsRead     bool       `json:"is_read" db:"is_read"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
