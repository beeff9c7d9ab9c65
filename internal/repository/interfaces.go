package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/pkg/payoff"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// List returns every user, newest first
	List(ctx context.Context) ([]*domain.User, error)
}

// DebtRepository defines the interface for debt data operations
type DebtRepository interface {
	// Create inserts a new debt
	Create(ctx context.Context, debt *domain.Debt) error

	// GetByID retrieves an active debt owned by the user
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Debt, error)

	// ListActive returns the user's active debts in creation order
	ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Debt, error)

	// Update persists the mutable fields of a debt
	Update(ctx context.Context, debt *domain.Debt) error

	// Deactivate soft deletes a debt
	Deactivate(ctx context.Context, userID, id uuid.UUID) error
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// List returns the user's tasks, newest first. A month filter keeps tasks
	// due in that month or earlier that are not completed.
	List(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error)

	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// ListOpenWithDueDate returns incomplete tasks that have a due date,
	// optionally for a single user.
	ListOpenWithDueDate(ctx context.Context, userID *uuid.UUID) ([]*domain.Task, error)

	// MarkOverdue flips a task to overdue
	MarkOverdue(ctx context.Context, id uuid.UUID) error

	// MarkAlerted records when the reminder for a task fired
	MarkAlerted(ctx context.Context, id uuid.UUID, at time.Time) error
}

// AlertRepository defines the interface for in-app alerts
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Alert, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error

	// Exists reports whether an alert with the code was already raised for the month
	Exists(ctx context.Context, userID uuid.UUID, code string, year, month int) (bool, error)
}

// CategoryRepository defines the interface for spending categories
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category owned by the user, active or not
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error)

	// ListActive returns the user's active categories in creation order
	ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	Update(ctx context.Context, category *domain.Category) error

	// Count returns how many categories the user has, including inactive ones
	Count(ctx context.Context, userID uuid.UUID) (int, error)

	// GetUncategorized returns the user's system Uncategorized category
	GetUncategorized(ctx context.Context, userID uuid.UUID) (*domain.Category, error)
}

// BudgetRepository defines the interface for monthly income and limits
type BudgetRepository interface {
	// GetMonth returns the month record with its income sources
	GetMonth(ctx context.Context, userID uuid.UUID, year, month int) (*domain.BudgetMonth, error)

	// SaveMonth upserts the month income and replaces its income sources
	SaveMonth(ctx context.Context, month *domain.BudgetMonth) error

	UpsertLimit(ctx context.Context, limit *domain.CategoryLimit) error

	// EffectiveLimits returns, per category, the most recent limit set at or
	// before the given month
	EffectiveLimits(ctx context.Context, userID uuid.UUID, year, month int) (map[uuid.UUID]decimal.Decimal, error)
}

// ExpenseRepository defines the interface for expenses
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error

	// ListMonth returns the expenses dated in the month, newest first
	ListMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]*domain.Expense, error)

	Delete(ctx context.Context, userID, id uuid.UUID) error

	// SpentByCategory sums the month's expenses per category
	SpentByCategory(ctx context.Context, userID uuid.UUID, year, month int) (map[uuid.UUID]decimal.Decimal, error)

	// Reassign moves every expense of one category to another
	Reassign(ctx context.Context, userID, fromCategoryID, toCategoryID uuid.UUID) error
}

// SuggestionRepository defines the interface for user feedback
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *domain.Suggestion) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Suggestion, error)
	ListAll(ctx context.Context) ([]*domain.Suggestion, error)
}

// PlanCache stores simulation results keyed by user, request and debts version
type PlanCache interface {
	// Version returns the current debts version of the user, 0 when unset
	Version(ctx context.Context, userID uuid.UUID) (int64, error)

	// Get returns the cached result; a miss is (nil, nil)
	Get(ctx context.Context, userID uuid.UUID, version int64, key string) (*payoff.Result, error)

	Set(ctx context.Context, userID uuid.UUID, version int64, key string, result *payoff.Result) error

	// Invalidate drops every cached plan of the user
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
