package domain

import (
	"time"

	"github.com/google/uuid"
)

const SuggestionStatusOpen = "open"

// Suggestion is user feedback reviewed by admins
type Suggestion struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateSuggestionRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}
