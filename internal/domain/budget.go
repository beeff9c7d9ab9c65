package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category tags
const (
	CategoryTagRegular       = "regular"
	CategoryTagSavings       = "savings"
	CategoryTagDebt          = "debt"
	CategoryTagUncategorized = "uncategorized"

	UncategorizedName = "Uncategorized"
)

// Category spend statuses
const (
	SpendStatusOK      = "ok"
	SpendStatusWarning = "warning"
	SpendStatusOver    = "over"
)

// Category is a spending bucket with a default monthly limit
type Category struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	UserID       uuid.UUID       `json:"-" db:"user_id"`
	Name         string          `json:"name" db:"name"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit" db:"monthly_limit"`
	Tag          string          `json:"tag" db:"tag"`
	IsSystem     bool            `json:"is_system" db:"is_system"`
	IsActive     bool            `json:"is_active" db:"is_active"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// CategoryLimit overrides a category limit from a given month onward
type CategoryLimit struct {
	UserID       uuid.UUID       `db:"user_id"`
	CategoryID   uuid.UUID       `db:"category_id"`
	Year         int             `db:"year"`
	Month        int             `db:"month"`
	MonthlyLimit decimal.Decimal `db:"monthly_limit"`
}

// BudgetMonth holds the income recorded for one month
type BudgetMonth struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        uuid.UUID       `json:"-" db:"user_id"`
	Year          int             `json:"year" db:"year"`
	Month         int             `json:"month" db:"month"`
	Salary        decimal.Decimal `json:"salary" db:"salary"`
	OtherIncome   decimal.Decimal `json:"other_income" db:"other_income"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	IncomeSources []*IncomeSource `json:"income_sources" db:"-"`
}

// IncomeSourcesTotal sums the extra income lines of the month.
func (b *BudgetMonth) IncomeSourcesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, source := range b.IncomeSources {
		total = total.Add(source.Amount)
	}
	return total
}

type IncomeSource struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	BudgetMonthID uuid.UUID       `json:"-" db:"budget_month_id"`
	Name          string          `json:"name" db:"name"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// Expense is a single spending entry
type Expense struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	UserID     uuid.UUID       `json:"-" db:"user_id"`
	CategoryID uuid.UUID       `json:"category_id" db:"category_id"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	Date       time.Time       `json:"date" db:"expense_date"`
	Note       *string         `json:"note" db:"note"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type CreateCategoryRequest struct {
	Name         string          `json:"name" validate:"required,max=80"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit" validate:"gte=0"`
	Tag          string          `json:"tag" validate:"omitempty,oneof=regular savings debt"`
	IsActive     *bool           `json:"is_active"`
}

// UpdateCategoryRequest is a partial update; nil fields are left untouched.
type UpdateCategoryRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=80"`
	MonthlyLimit *decimal.Decimal `json:"monthly_limit" validate:"omitempty,gte=0"`
	Tag          *string          `json:"tag" validate:"omitempty,oneof=regular savings debt"`
	IsActive     *bool            `json:"is_active"`
}

// Apply copies the set fields onto c.
func (r *UpdateCategoryRequest) Apply(c *Category) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.MonthlyLimit != nil {
		c.MonthlyLimit = *r.MonthlyLimit
	}
	if r.Tag != nil {
		c.Tag = *r.Tag
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
}

// DeleteCategoryRequest names where the expenses of a deleted category go.
// Without a replacement they move to Uncategorized.
type DeleteCategoryRequest struct {
	ReplacementCategoryID *uuid.UUID `json:"replacement_category_id"`
}

type DeleteCategoryResponse struct {
	Status  string    `json:"status"`
	MovedTo uuid.UUID `json:"moved_to"`
}

type IncomeSourceRequest struct {
	Name   string          `json:"name" validate:"required,max=120"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
}

// SetSalaryRequest records the income of a month; the current month when unset.
type SetSalaryRequest struct {
	Salary        decimal.Decimal       `json:"salary" validate:"gte=0"`
	OtherIncome   decimal.Decimal       `json:"other_income" validate:"gte=0"`
	IncomeSources []IncomeSourceRequest `json:"income_sources" validate:"dive"`
	Year          *int                  `json:"year" validate:"omitempty,gte=1"`
	Month         *int                  `json:"month" validate:"omitempty,min=1,max=12"`
}

type LimitRequest struct {
	CategoryID   uuid.UUID       `json:"category_id" validate:"required"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit" validate:"gte=0"`
}

type SetLimitsRequest struct {
	Year   int            `json:"year" validate:"required,gte=1"`
	Month  int            `json:"month" validate:"required,min=1,max=12"`
	Limits []LimitRequest `json:"limits" validate:"dive"`
}

// CreateExpenseRequest without a category files the expense as Uncategorized.
type CreateExpenseRequest struct {
	Amount     decimal.Decimal `json:"amount" validate:"gt=0"`
	CategoryID *uuid.UUID      `json:"category_id"`
	Date       Date            `json:"date"`
	Note       *string         `json:"note" validate:"omitempty,max=500"`
}

// CategorySpend is the per-category line of a budget summary
type CategorySpend struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	Name         string          `json:"name"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	Spent        decimal.Decimal `json:"spent"`
	Percent      decimal.Decimal `json:"percent"`
	Status       string          `json:"status"`
	Tag          string          `json:"tag"`
}

// BudgetSummary is the monthly overview of income, limits and spending
type BudgetSummary struct {
	Year               int              `json:"year"`
	Month              int              `json:"month"`
	Salary             decimal.Decimal  `json:"salary"`
	OtherIncome        decimal.Decimal  `json:"other_income"`
	TotalIncome        decimal.Decimal  `json:"total_income"`
	FixedTotal         decimal.Decimal  `json:"fixed_total"`
	PlannedSavings     decimal.Decimal  `json:"planned_savings"`
	PlannedDebtPayment decimal.Decimal  `json:"planned_debt_payment"`
	RemainingFlex      decimal.Decimal  `json:"remaining_flex"`
	TotalSpent         decimal.Decimal  `json:"total_spent"`
	ProjectedTotal     decimal.Decimal  `json:"projected_total"`
	OverBudget         bool             `json:"over_budget"`
	Suggestions        []string         `json:"suggestions"`
	Categories         []*CategorySpend `json:"categories"`
}

// BudgetCurrent is the editable state of a month: income, effective limits and debts
type BudgetCurrent struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	Salary        decimal.Decimal `json:"salary"`
	OtherIncome   decimal.Decimal `json:"other_income"`
	IncomeSources []*IncomeSource `json:"income_sources"`
	Categories    []*Category     `json:"categories"`
	Debts         []*Debt         `json:"debts"`
}
