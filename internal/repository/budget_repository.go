package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/shopspring/decimal"
)

type budgetRepository struct {
	db *sqlx.DB
}

func NewBudgetRepository(db *sqlx.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) GetMonth(ctx context.Context, userID uuid.UUID, year, month int) (*domain.BudgetMonth, error) {
	query := `
		SELECT id, user_id, year, month, salary, other_income, created_at
		FROM budget_months
		WHERE user_id = $1 AND year = $2 AND month = $3
	`

	var record domain.BudgetMonth
	if err := r.db.GetContext(ctx, &record, query, userID, year, month); err != nil {
		return nil, err
	}

	sources := []*domain.IncomeSource{}
	err := r.db.SelectContext(ctx, &sources, `
		SELECT id, budget_month_id, name, amount, created_at
		FROM budget_income_sources
		WHERE budget_month_id = $1
		ORDER BY created_at, id
	`, record.ID)
	if err != nil {
		return nil, err
	}
	record.IncomeSources = sources

	return &record, nil
}

// SaveMonth keeps the id of an existing month row; record.ID is updated to it.
func (r *budgetRepository) SaveMonth(ctx context.Context, record *domain.BudgetMonth) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO budget_months (id, user_id, year, month, salary, other_income, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, year, month)
		DO UPDATE SET salary = EXCLUDED.salary, other_income = EXCLUDED.other_income
		RETURNING id, created_at
	`
	err = tx.QueryRowxContext(ctx, upsert,
		record.ID,
		record.UserID,
		record.Year,
		record.Month,
		record.Salary,
		record.OtherIncome,
		record.CreatedAt,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM budget_income_sources WHERE budget_month_id = $1`, record.ID); err != nil {
		return err
	}

	insert := `
		INSERT INTO budget_income_sources (id, budget_month_id, name, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, source := range record.IncomeSources {
		source.BudgetMonthID = record.ID
		if _, err := tx.ExecContext(ctx, insert, source.ID, source.BudgetMonthID, source.Name, source.Amount, source.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *budgetRepository) UpsertLimit(ctx context.Context, limit *domain.CategoryLimit) error {
	query := `
		INSERT INTO category_limits (user_id, category_id, year, month, monthly_limit)
		VALUES (:user_id, :category_id, :year, :month, :monthly_limit)
		ON CONFLICT (category_id, year, month)
		DO UPDATE SET monthly_limit = EXCLUDED.monthly_limit
	`

	_, err := r.db.NamedExecContext(ctx, query, limit)
	return err
}

func (r *budgetRepository) EffectiveLimits(ctx context.Context, userID uuid.UUID, year, month int) (map[uuid.UUID]decimal.Decimal, error) {
	query := `
		SELECT DISTINCT ON (category_id) category_id, monthly_limit
		FROM category_limits
		WHERE user_id = $1 AND (year < $2 OR (year = $2 AND month <= $3))
		ORDER BY category_id, year DESC, month DESC
	`

	var rows []struct {
		CategoryID   uuid.UUID       `db:"category_id"`
		MonthlyLimit decimal.Decimal `db:"monthly_limit"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, userID, year, month); err != nil {
		return nil, err
	}

	limits := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		limits[row.CategoryID] = row.MonthlyLimit
	}
	return limits, nil
}
