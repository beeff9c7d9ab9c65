package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/pkg/utils"
	"github.com/shopspring/decimal"
)

const expenseColumns = `id, user_id, category_id, amount, expense_date, note, created_at`

type expenseRepository struct {
	db *sqlx.DB
}

func NewExpenseRepository(db *sqlx.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES (:id, :user_id, :category_id, :amount, :expense_date, :note, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, expense)
	return err
}

func (r *expenseRepository) ListMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]*domain.Expense, error) {
	start, next := utils.MonthRange(year, month)
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2 AND expense_date < $3
		ORDER BY expense_date DESC, created_at DESC
	`

	var expenses []*domain.Expense
	if err := r.db.SelectContext(ctx, &expenses, query, userID, start, next); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *expenseRepository) SpentByCategory(ctx context.Context, userID uuid.UUID, year, month int) (map[uuid.UUID]decimal.Decimal, error) {
	start, next := utils.MonthRange(year, month)
	query := `
		SELECT category_id, SUM(amount) AS spent
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2 AND expense_date < $3
		GROUP BY category_id
	`

	var rows []struct {
		CategoryID uuid.UUID       `db:"category_id"`
		Spent      decimal.Decimal `db:"spent"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, userID, start, next); err != nil {
		return nil, err
	}

	spent := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		spent[row.CategoryID] = row.Spent
	}
	return spent, nil
}

func (r *expenseRepository) Reassign(ctx context.Context, userID, fromCategoryID, toCategoryID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET category_id = $3 WHERE user_id = $1 AND category_id = $2`,
		userID, fromCategoryID, toCategoryID,
	)
	return err
}
