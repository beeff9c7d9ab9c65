package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/budget-planner/internal/domain"
)

type suggestionRepository struct {
	db *sqlx.DB
}

func NewSuggestionRepository(db *sqlx.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *domain.Suggestion) error {
	query := `
		INSERT INTO suggestions (id, user_id, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		suggestion.ID,
		suggestion.UserID,
		suggestion.Message,
		suggestion.Status,
		suggestion.CreatedAt,
	)
	return err
}

func (r *suggestionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Suggestion, error) {
	var suggestions []*domain.Suggestion
	err := r.db.SelectContext(ctx, &suggestions, `
		SELECT id, user_id, message, status, created_at
		FROM suggestions
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *suggestionRepository) ListAll(ctx context.Context) ([]*domain.Suggestion, error) {
	var suggestions []*domain.Suggestion
	err := r.db.SelectContext(ctx, &suggestions, `
		SELECT id, user_id, message, status, created_at
		FROM suggestions
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}
