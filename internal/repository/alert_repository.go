package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/budget-planner/internal/domain"
)

const alertColumns = `id, user_id, category_id, year, month, code, level, message, is_read, created_at`

type alertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES (:id, :user_id, :category_id, :year, :month, :code, :level, :message, :is_read, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, alert)
	return err
}

func (r *alertRepository) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE user_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC, id
	`

	var alerts []*domain.Alert
	if err := r.db.SelectContext(ctx, &alerts, query, userID, unreadOnly); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE alerts SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *alertRepository) Exists(ctx context.Context, userID uuid.UUID, code string, year, month int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE user_id = $1 AND code = $2 AND year = $3 AND month = $4
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, code, year, month); err != nil {
		return false, err
	}
	return exists, nil
}
