package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/budget-planner/pkg/payoff"
	"github.com/shopspring/decimal"
)

// Debt represents a debt owned by a user
type Debt struct {
	ID                    uuid.UUID           `json:"id" db:"id"`
	UserID                uuid.UUID           `json:"-" db:"user_id"`
	Name                  string              `json:"debt_name" db:"debt_name"`
	TotalBalance          decimal.Decimal     `json:"total_balance" db:"total_balance"`
	APR                   decimal.NullDecimal `json:"apr" db:"apr"`
	MinimumMonthlyPayment decimal.Decimal     `json:"minimum_monthly_payment" db:"minimum_monthly_payment"`
	ExtraMonthlyPayment   decimal.Decimal     `json:"extra_monthly_payment" db:"extra_monthly_payment"`
	IsActive              bool                `json:"is_active" db:"is_active"`
	CreatedAt             time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at" db:"updated_at"`
}

// IsPaidOff reports whether nothing is left to simulate for this debt.
func (d *Debt) IsPaidOff() bool {
	return !d.TotalBalance.IsPositive()
}

// DTOs for requests and responses

type CreateDebtRequest struct {
	Name                  string              `json:"debt_name" validate:"required,max=120"`
	TotalBalance          decimal.Decimal     `json:"total_balance" validate:"gte=0"`
	APR                   decimal.NullDecimal `json:"apr" validate:"omitempty,gte=0,lte=1000"`
	MinimumMonthlyPayment decimal.Decimal     `json:"minimum_monthly_payment" validate:"gte=0"`
	ExtraMonthlyPayment   decimal.Decimal     `json:"extra_monthly_payment" validate:"gte=0"`
}

// UpdateDebtRequest is a partial update; nil fields are left untouched.
type UpdateDebtRequest struct {
	Name                  *string              `json:"debt_name" validate:"omitempty,min=1,max=120"`
	TotalBalance          *decimal.Decimal     `json:"total_balance" validate:"omitempty,gte=0"`
	APR                   *decimal.NullDecimal `json:"apr" validate:"omitempty,gte=0,lte=1000"`
	MinimumMonthlyPayment *decimal.Decimal     `json:"minimum_monthly_payment" validate:"omitempty,gte=0"`
	ExtraMonthlyPayment   *decimal.Decimal     `json:"extra_monthly_payment" validate:"omitempty,gte=0"`
	IsActive              *bool                `json:"is_active"`
}

// Apply copies the set fields onto d.
func (r *UpdateDebtRequest) Apply(d *Debt) {
	if r.Name != nil {
		d.Name = *r.Name
	}
	if r.TotalBalance != nil {
		d.TotalBalance = *r.TotalBalance
	}
	if r.APR != nil {
		d.APR = *r.APR
	}
	if r.MinimumMonthlyPayment != nil {
		d.MinimumMonthlyPayment = *r.MinimumMonthlyPayment
	}
	if r.ExtraMonthlyPayment != nil {
		d.ExtraMonthlyPayment = *r.ExtraMonthlyPayment
	}
	if r.IsActive != nil {
		d.IsActive = *r.IsActive
	}
}

// SimulationRequest asks for a payoff plan over the caller's active debts.
type SimulationRequest struct {
	Strategy            string          `json:"strategy"`
	ExtraMonthlyPayment decimal.Decimal `json:"extra_monthly_payment" validate:"gte=0"`
	RollFreedPayments   bool            `json:"roll_freed_payments"`
}

// CompareRequest asks for both strategies side by side.
type CompareRequest struct {
	ExtraMonthlyPayment decimal.Decimal `json:"extra_monthly_payment" validate:"gte=0"`
	RollFreedPayments   bool            `json:"roll_freed_payments"`
}

// ToPayoff converts the debt into simulator input. A missing APR counts as 0%.
func (d *Debt) ToPayoff() payoff.Debt {
	apr := decimal.Zero
	if d.APR.Valid {
		apr = d.APR.Decimal
	}
	return payoff.Debt{
		ID:             d.ID.String(),
		Name:           d.Name,
		Balance:        d.TotalBalance,
		APR:            apr,
		MinimumPayment: d.MinimumMonthlyPayment,
	}
}
