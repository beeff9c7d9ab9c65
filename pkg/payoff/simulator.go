// Package payoff simulates paying down a set of debts month by month under
// the avalanche or snowball strategy.
//
// A simulation never mutates its input. The priority order is fixed when the
// simulation starts; paid debts drop out but the remaining debts are never
// re-ranked. Each month a single pass over the ordered debts carries a running
// surplus, so money left over after a debt is retired flows to the next debt
// in the same month.
package payoff

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultMaxMonths is the convergence ceiling (100 years).
const DefaultMaxMonths = 1200

// balanceScale bounds the precision carried on balances between months.
const balanceScale = 8

var ErrNegativeAmount = errors.New("amount must not be negative")

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Debt is one obligation fed into a simulation.
type Debt struct {
	ID             string
	Name           string
	Balance        decimal.Decimal
	APR            decimal.Decimal // percent, zero when unknown
	MinimumPayment decimal.Decimal
}

// Options controls a simulation run.
type Options struct {
	Strategy            Strategy
	ExtraMonthlyPayment decimal.Decimal
	// MaxMonths caps the run; zero or negative means DefaultMaxMonths.
	MaxMonths int
	// RollFreedPayments adds the minimums of debts retired in earlier months
	// to the pooled extra payment.
	RollFreedPayments bool
}

// Entry is the outcome for a single debt.
type Entry struct {
	DebtID       string          `json:"debt_id"`
	DebtName     string          `json:"debt_name"`
	PayoffMonths int             `json:"payoff_months"`
	PaidOff      bool            `json:"paid_off"`
	InterestPaid decimal.Decimal `json:"interest_paid"`
}

// Result is the outcome of a simulation. When Converged is false the ceiling
// was reached: TotalMonths equals the ceiling and unpaid entries carry
// PaidOff=false with PayoffMonths set to the ceiling.
type Result struct {
	Strategy       Strategy        `json:"strategy"`
	TotalMonths    int             `json:"total_months"`
	Converged      bool            `json:"converged"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	PayoffSchedule []Entry         `json:"payoff_schedule"`
}

type account struct {
	debt        Debt
	balance     decimal.Decimal
	rate        decimal.Decimal
	interest    decimal.Decimal
	payoffMonth int
	paid        bool
}

// Simulate runs the month-step amortization for debts under opts.
func Simulate(debts []Debt, opts Options) (*Result, error) {
	strategy, err := ParseStrategy(string(opts.Strategy))
	if err != nil {
		return nil, err
	}
	if err := validate(debts, opts.ExtraMonthlyPayment); err != nil {
		return nil, err
	}

	maxMonths := opts.MaxMonths
	if maxMonths <= 0 {
		maxMonths = DefaultMaxMonths
	}

	accounts := make([]*account, 0, len(debts))
	for _, d := range debts {
		if !d.Balance.IsPositive() {
			continue
		}
		accounts = append(accounts, &account{
			debt:    d,
			balance: d.Balance,
			rate:    d.APR.Div(hundred).Div(twelve),
		})
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return strategy.less(accounts[i].debt, accounts[j].debt)
	})

	result := &Result{
		Strategy:       strategy,
		Converged:      true,
		TotalInterest:  decimal.Zero,
		PayoffSchedule: make([]Entry, 0, len(accounts)),
	}
	if len(accounts) == 0 {
		return result, nil
	}

	remaining := len(accounts)
	freed := decimal.Zero
	month := 0
	for remaining > 0 && month < maxMonths {
		month++

		for _, a := range accounts {
			if a.paid || a.rate.IsZero() {
				continue
			}
			interest := a.balance.Mul(a.rate).Round(balanceScale)
			a.balance = a.balance.Add(interest)
			a.interest = a.interest.Add(interest)
		}

		surplus := opts.ExtraMonthlyPayment
		if opts.RollFreedPayments {
			surplus = surplus.Add(freed)
		}
		released := decimal.Zero
		for _, a := range accounts {
			if a.paid {
				continue
			}
			offer := a.debt.MinimumPayment.Add(surplus)
			if offer.GreaterThanOrEqual(a.balance) {
				surplus = offer.Sub(a.balance)
				a.balance = decimal.Zero
				a.paid = true
				a.payoffMonth = month
				released = released.Add(a.debt.MinimumPayment)
				remaining--
				continue
			}
			a.balance = a.balance.Sub(offer)
			surplus = decimal.Zero
		}
		freed = freed.Add(released)
	}

	result.Converged = remaining == 0
	for _, a := range accounts {
		entry := Entry{
			DebtID:       a.debt.ID,
			DebtName:     a.debt.Name,
			PayoffMonths: a.payoffMonth,
			PaidOff:      a.paid,
			InterestPaid: a.interest.Round(2),
		}
		if !a.paid {
			entry.PayoffMonths = maxMonths
		}
		if entry.PayoffMonths > result.TotalMonths {
			result.TotalMonths = entry.PayoffMonths
		}
		result.TotalInterest = result.TotalInterest.Add(a.interest)
		result.PayoffSchedule = append(result.PayoffSchedule, entry)
	}
	result.TotalInterest = result.TotalInterest.Round(2)

	return result, nil
}

func validate(debts []Debt, extra decimal.Decimal) error {
	if extra.IsNegative() {
		return fmt.Errorf("%w: extra_monthly_payment", ErrNegativeAmount)
	}
	for _, d := range debts {
		switch {
		case d.Balance.IsNegative():
			return fmt.Errorf("%w: balance of %q", ErrNegativeAmount, d.Name)
		case d.APR.IsNegative():
			return fmt.Errorf("%w: apr of %q", ErrNegativeAmount, d.Name)
		case d.MinimumPayment.IsNegative():
			return fmt.Errorf("%w: minimum payment of %q", ErrNegativeAmount, d.Name)
		}
	}
	return nil
}
