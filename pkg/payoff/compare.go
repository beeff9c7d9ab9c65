package payoff

import "github.com/shopspring/decimal"

// Comparison holds both strategies run against the same debts.
type Comparison struct {
	Avalanche     *Result         `json:"avalanche"`
	Snowball      *Result         `json:"snowball"`
	Recommended   Strategy        `json:"recommended"`
	InterestSaved decimal.Decimal `json:"interest_saved"`
	MonthsSaved   int             `json:"months_saved"`
}

// Compare simulates every strategy with the same options and recommends the
// cheaper one. The Strategy field of opts is ignored.
func Compare(debts []Debt, opts Options) (*Comparison, error) {
	opts.Strategy = Avalanche
	avalanche, err := Simulate(debts, opts)
	if err != nil {
		return nil, err
	}

	opts.Strategy = Snowball
	snowball, err := Simulate(debts, opts)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Avalanche:     avalanche,
		Snowball:      snowball,
		Recommended:   recommend(avalanche, snowball),
		InterestSaved: decimal.Max(decimal.Zero, snowball.TotalInterest.Sub(avalanche.TotalInterest)),
		MonthsSaved:   snowball.TotalMonths - avalanche.TotalMonths,
	}, nil
}

// recommend prefers a converging plan, then lower interest, then fewer months.
// Avalanche wins full ties.
func recommend(avalanche, snowball *Result) Strategy {
	if avalanche.Converged != snowball.Converged {
		if avalanche.Converged {
			return Avalanche
		}
		return Snowball
	}
	if c := snowball.TotalInterest.Cmp(avalanche.TotalInterest); c != 0 {
		if c < 0 {
			return Snowball
		}
		return Avalanche
	}
	if snowball.TotalMonths < avalanche.TotalMonths {
		return Snowball
	}
	return Avalanche
}
