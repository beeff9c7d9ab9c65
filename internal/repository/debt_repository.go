package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/budget-planner/internal/domain"
)

const debtColumns = `id, user_id, debt_name, total_balance, apr, minimum_monthly_payment, extra_monthly_payment, is_active, created_at, updated_at`

type debtRepository struct {
	db *sqlx.DB
}

func NewDebtRepository(db *sqlx.DB) DebtRepository {
	return &debtRepository{db: db}
}

func (r *debtRepository) Create(ctx context.Context, debt *domain.Debt) error {
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		debt.ID,
		debt.UserID,
		debt.Name,
		debt.TotalBalance,
		debt.APR,
		debt.MinimumMonthlyPayment,
		debt.ExtraMonthlyPayment,
		debt.IsActive,
		debt.CreatedAt,
		debt.UpdatedAt,
	)

	return err
}

func (r *debtRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE id = $1 AND user_id = $2 AND is_active
	`

	var debt domain.Debt
	if err := r.db.GetContext(ctx, &debt, query, id, userID); err != nil {
		return nil, err
	}

	return &debt, nil
}

func (r *debtRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1 AND is_active
		ORDER BY created_at, id
	`

	var debts []*domain.Debt
	if err := r.db.SelectContext(ctx, &debts, query, userID); err != nil {
		return nil, err
	}

	return debts, nil
}

func (r *debtRepository) Update(ctx context.Context, debt *domain.Debt) error {
	query := `
		UPDATE debts
		SET debt_name = $3, total_balance = $4, apr = $5, minimum_monthly_payment = $6,
			extra_monthly_payment = $7, is_active = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2
	`

	debt.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		debt.ID,
		debt.UserID,
		debt.Name,
		debt.TotalBalance,
		debt.APR,
		debt.MinimumMonthlyPayment,
		debt.ExtraMonthlyPayment,
		debt.IsActive,
		debt.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return requireRow(result)
}

func (r *debtRepository) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		UPDATE debts
		SET is_active = FALSE, updated_at = $3
		WHERE id = $1 AND user_id = $2 AND is_active
	`

	result, err := r.db.ExecContext(ctx, query, id, userID, time.Now())
	if err != nil {
		return err
	}

	return requireRow(result)
}
