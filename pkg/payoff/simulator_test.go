package payoff

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func twoDebts() []Debt {
	return []Debt{
		{ID: "d1", Name: "Card", Balance: dec(1000), APR: dec(24), MinimumPayment: dec(50)},
		{ID: "d2", Name: "Loan", Balance: dec(500), APR: dec(12), MinimumPayment: dec(50)},
	}
}

func scheduleIDs(r *Result) []string {
	ids := make([]string, 0, len(r.PayoffSchedule))
	for _, e := range r.PayoffSchedule {
		ids = append(ids, e.DebtID)
	}
	return ids
}

func TestSimulate_SingleZeroAPRDebt(t *testing.T) {
	debts := []Debt{{ID: "d1", Name: "Phone", Balance: dec(1200), MinimumPayment: dec(100)}}

	result, err := Simulate(debts, Options{Strategy: Avalanche})

	require.NoError(t, err)
	assert.True(t, result.Converged)
	assert.Equal(t, 12, result.TotalMonths)
	require.Len(t, result.PayoffSchedule, 1)
	assert.Equal(t, 12, result.PayoffSchedule[0].PayoffMonths)
	assert.True(t, result.PayoffSchedule[0].PaidOff)
	assert.True(t, result.TotalInterest.IsZero())
}

func TestSimulate_AvalancheTargetsHighestAPR(t *testing.T) {
	result, err := Simulate(twoDebts(), Options{Strategy: Avalanche, ExtraMonthlyPayment: dec(100)})

	require.NoError(t, err)
	assert.True(t, result.Converged)
	assert.Equal(t, []string{"d1", "d2"}, scheduleIDs(result))

	card, loan := result.PayoffSchedule[0], result.PayoffSchedule[1]
	assert.Equal(t, 8, card.PayoffMonths)
	assert.Equal(t, 9, loan.PayoffMonths)
	assert.Less(t, card.PayoffMonths, loan.PayoffMonths)
	assert.Equal(t, 9, result.TotalMonths)
}

func TestSimulate_SnowballTargetsSmallestBalance(t *testing.T) {
	avalanche, err := Simulate(twoDebts(), Options{Strategy: Avalanche, ExtraMonthlyPayment: dec(100)})
	require.NoError(t, err)

	result, err := Simulate(twoDebts(), Options{Strategy: Snowball, ExtraMonthlyPayment: dec(100)})
	require.NoError(t, err)

	assert.True(t, result.Converged)
	assert.Equal(t, []string{"d2", "d1"}, scheduleIDs(result))

	loan, card := result.PayoffSchedule[0], result.PayoffSchedule[1]
	assert.Equal(t, 4, loan.PayoffMonths)
	assert.Equal(t, 10, card.PayoffMonths)
	assert.Less(t, loan.PayoffMonths, card.PayoffMonths)
	assert.Greater(t, card.PayoffMonths, avalanche.PayoffSchedule[0].PayoffMonths)
	assert.True(t, result.TotalInterest.GreaterThan(avalanche.TotalInterest))
}

func TestSimulate_NonConvergent(t *testing.T) {
	debts := []Debt{{ID: "d1", Name: "Payday", Balance: dec(1000), APR: dec(24), MinimumPayment: dec(10)}}

	result, err := Simulate(debts, Options{Strategy: Avalanche})

	require.NoError(t, err)
	assert.False(t, result.Converged)
	assert.Equal(t, DefaultMaxMonths, result.TotalMonths)
	require.Len(t, result.PayoffSchedule, 1)
	assert.False(t, result.PayoffSchedule[0].PaidOff)
	assert.Equal(t, DefaultMaxMonths, result.PayoffSchedule[0].PayoffMonths)
}

func TestSimulate_CustomCeiling(t *testing.T) {
	debts := []Debt{{ID: "d1", Name: "Phone", Balance: dec(1200), MinimumPayment: dec(100)}}

	result, err := Simulate(debts, Options{Strategy: Snowball, MaxMonths: 6})

	require.NoError(t, err)
	assert.False(t, result.Converged)
	assert.Equal(t, 6, result.TotalMonths)
}

func TestSimulate_LowPriorityNonConvergentDebt(t *testing.T) {
	// The payday debt never becomes first priority while the card is open,
	// and once it does the extra payment is enough to retire it.
	debts := []Debt{
		{ID: "card", Name: "Card", Balance: dec(300), APR: dec(30), MinimumPayment: dec(50)},
		{ID: "payday", Name: "Payday", Balance: dec(1000), APR: dec(24), MinimumPayment: dec(10)},
	}

	result, err := Simulate(debts, Options{Strategy: Avalanche, ExtraMonthlyPayment: dec(200)})

	require.NoError(t, err)
	assert.True(t, result.Converged)
	assert.Equal(t, []string{"card", "payday"}, scheduleIDs(result))
	assert.Equal(t, result.PayoffSchedule[1].PayoffMonths, result.TotalMonths)
}

func TestSimulate_EmptyAndZeroBalance(t *testing.T) {
	tests := []struct {
		name  string
		debts []Debt
	}{
		{name: "nil debts", debts: nil},
		{name: "empty debts", debts: []Debt{}},
		{name: "only paid debts", debts: []Debt{{ID: "d1", Name: "Done", Balance: decimal.Zero, MinimumPayment: dec(50)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Simulate(tt.debts, Options{Strategy: Snowball, ExtraMonthlyPayment: dec(100)})

			require.NoError(t, err)
			assert.Equal(t, 0, result.TotalMonths)
			assert.True(t, result.Converged)
			assert.Empty(t, result.PayoffSchedule)
		})
	}
}

func TestSimulate_ZeroBalanceDebtsAreExcluded(t *testing.T) {
	debts := append(twoDebts(), Debt{ID: "d3", Name: "Closed", Balance: decimal.Zero, APR: dec(99), MinimumPayment: dec(10)})

	result, err := Simulate(debts, Options{Strategy: Avalanche, ExtraMonthlyPayment: dec(100)})

	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, scheduleIDs(result))
}

func TestSimulate_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		debts   []Debt
		opts    Options
		wantErr error
	}{
		{
			name:    "unknown strategy",
			debts:   twoDebts(),
			opts:    Options{Strategy: "cheapest"},
			wantErr: ErrInvalidStrategy,
		},
		{
			name:    "empty strategy",
			debts:   twoDebts(),
			opts:    Options{},
			wantErr: ErrInvalidStrategy,
		},
		{
			name:    "negative extra payment",
			debts:   twoDebts(),
			opts:    Options{Strategy: Avalanche, ExtraMonthlyPayment: dec(-1)},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "negative balance",
			debts:   []Debt{{ID: "d1", Name: "Bad", Balance: dec(-5), MinimumPayment: dec(1)}},
			opts:    Options{Strategy: Avalanche},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "negative apr",
			debts:   []Debt{{ID: "d1", Name: "Bad", Balance: dec(5), APR: dec(-1), MinimumPayment: dec(1)}},
			opts:    Options{Strategy: Snowball},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "negative minimum",
			debts:   []Debt{{ID: "d1", Name: "Bad", Balance: dec(5), MinimumPayment: dec(-1)}},
			opts:    Options{Strategy: Snowball},
			wantErr: ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Simulate(tt.debts, tt.opts)

			assert.Nil(t, result)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestSimulate_StableTieBreak(t *testing.T) {
	debts := []Debt{
		{ID: "a", Name: "A", Balance: dec(400), APR: dec(10), MinimumPayment: dec(20)},
		{ID: "b", Name: "B", Balance: dec(400), APR: dec(10), MinimumPayment: dec(20)},
		{ID: "c", Name: "C", Balance: dec(400), MinimumPayment: dec(20)},
		{ID: "d", Name: "D", Balance: dec(400), MinimumPayment: dec(20)},
	}

	avalanche, err := Simulate(debts, Options{Strategy: Avalanche, ExtraMonthlyPayment: dec(50)})
	require.NoError(t, err)
	snowball, err := Simulate(debts, Options{Strategy: Snowball, ExtraMonthlyPayment: dec(50)})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, scheduleIDs(avalanche))
	assert.Equal(t, []string{"a", "b", "c", "d"}, scheduleIDs(snowball))
}

func TestSimulate_ZeroAPROrdering(t *testing.T) {
	tied := []Debt{
		{ID: "a", Name: "A", Balance: dec(300), MinimumPayment: dec(25)},
		{ID: "b", Name: "B", Balance: dec(300), MinimumPayment: dec(25)},
	}
	avalanche, err := Simulate(tied, Options{Strategy: Avalanche, ExtraMonthlyPayment: dec(10)})
	require.NoError(t, err)
	snowball, err := Simulate(tied, Options{Strategy: Snowball, ExtraMonthlyPayment: dec(10)})
	require.NoError(t, err)
	assert.Equal(t, avalanche.PayoffSchedule, snowball.PayoffSchedule)

	untied := []Debt{
		{ID: "a", Name: "A", Balance: dec(900), MinimumPayment: dec(25)},
		{ID: "b", Name: "B", Balance: dec(300), MinimumPayment: dec(25)},
	}
	avalanche, err = Simulate(untied, Options{Strategy: Avalanche, ExtraMonthlyPayment: dec(10)})
	require.NoError(t, err)
	snowball, err = Simulate(untied, Options{Strategy: Snowball, ExtraMonthlyPayment: dec(10)})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, scheduleIDs(avalanche))
	assert.Equal(t, []string{"b", "a"}, scheduleIDs(snowball))
}

func TestSimulate_OverpaymentCascadesWithinMonth(t *testing.T) {
	debts := []Debt{
		{ID: "small", Name: "Small", Balance: dec(30), MinimumPayment: dec(10)},
		{ID: "big", Name: "Big", Balance: dec(200), MinimumPayment: dec(10)},
	}

	result, err := Simulate(debts, Options{Strategy: Snowball, ExtraMonthlyPayment: dec(100)})

	require.NoError(t, err)
	// Month 1: small takes 30 of 110, big gets 10 + 80 leftover = 90 -> 110.
	// Month 2: big gets 10 + 100 = 110 -> 0.
	assert.Equal(t, 1, result.PayoffSchedule[0].PayoffMonths)
	assert.Equal(t, 2, result.PayoffSchedule[1].PayoffMonths)
	assert.Equal(t, 2, result.TotalMonths)
}

func TestSimulate_RollFreedPayments(t *testing.T) {
	debts := []Debt{
		{ID: "small", Name: "Small", Balance: dec(100), MinimumPayment: dec(100)},
		{ID: "big", Name: "Big", Balance: dec(1000), MinimumPayment: dec(100)},
	}

	plain, err := Simulate(debts, Options{Strategy: Snowball})
	require.NoError(t, err)
	rolled, err := Simulate(debts, Options{Strategy: Snowball, RollFreedPayments: true})
	require.NoError(t, err)

	assert.Equal(t, 10, plain.TotalMonths)
	// From month 2 the big debt receives 200 a month: 900 left after month 1.
	assert.Equal(t, 6, rolled.TotalMonths)
}

func TestSimulate_TotalMonthsIsMaxPayoff(t *testing.T) {
	debts := []Debt{
		{ID: "a", Name: "A", Balance: dec(2500), APR: dec(19.99), MinimumPayment: dec(75)},
		{ID: "b", Name: "B", Balance: dec(800), APR: dec(5.5), MinimumPayment: dec(40)},
		{ID: "c", Name: "C", Balance: dec(12000), APR: dec(7.25), MinimumPayment: dec(250)},
	}

	for _, strategy := range Strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			result, err := Simulate(debts, Options{Strategy: strategy, ExtraMonthlyPayment: dec(150)})
			require.NoError(t, err)

			maxMonths := 0
			for _, e := range result.PayoffSchedule {
				if e.PayoffMonths > maxMonths {
					maxMonths = e.PayoffMonths
				}
			}
			assert.Equal(t, maxMonths, result.TotalMonths)
		})
	}
}

func TestSimulate_MoreExtraNeverTakesLonger(t *testing.T) {
	debts := []Debt{
		{ID: "a", Name: "A", Balance: dec(2500), APR: dec(19.99), MinimumPayment: dec(75)},
		{ID: "b", Name: "B", Balance: dec(800), APR: dec(5.5), MinimumPayment: dec(40)},
		{ID: "c", Name: "C", Balance: dec(4000), APR: dec(29.9), MinimumPayment: dec(100)},
	}

	for _, strategy := range Strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			previous := DefaultMaxMonths + 1
			for _, extra := range []float64{0, 25, 50, 100, 250, 1000} {
				result, err := Simulate(debts, Options{Strategy: strategy, ExtraMonthlyPayment: dec(extra)})
				require.NoError(t, err)
				assert.LessOrEqual(t, result.TotalMonths, previous, "extra %v", extra)
				previous = result.TotalMonths
			}
		})
	}
}

func TestSimulate_IdempotentAndDoesNotMutateInput(t *testing.T) {
	debts := twoDebts()
	snapshot := twoDebts()
	opts := Options{Strategy: Snowball, ExtraMonthlyPayment: dec(100)}

	first, err := Simulate(debts, opts)
	require.NoError(t, err)
	second, err := Simulate(debts, opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, debts)
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    Strategy
		wantErr bool
	}{
		{input: "avalanche", want: Avalanche},
		{input: " Snowball ", want: Snowball},
		{input: "AVALANCHE", want: Avalanche},
		{input: "", wantErr: true},
		{input: "compare", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStrategy)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	comparison, err := Compare(twoDebts(), Options{ExtraMonthlyPayment: dec(100)})

	require.NoError(t, err)
	assert.Equal(t, Avalanche, comparison.Avalanche.Strategy)
	assert.Equal(t, Snowball, comparison.Snowball.Strategy)
	assert.Equal(t, Avalanche, comparison.Recommended)
	assert.True(t, comparison.InterestSaved.IsPositive())
	assert.Equal(t, 1, comparison.MonthsSaved)
}

func TestCompare_PropagatesValidation(t *testing.T) {
	_, err := Compare(twoDebts(), Options{ExtraMonthlyPayment: dec(-10)})

	assert.ErrorIs(t, err, ErrNegativeAmount)
}
