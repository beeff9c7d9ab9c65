package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/segyhp/budget-planner/pkg/payoff"
	"github.com/shopspring/decimal"
)

var errNoDebts = errors.New("no [[debt]] tables found")

type debtFile struct {
	Debts []fileDebt `toml:"debt"`
}

type fileDebt struct {
	ID      string          `toml:"id"`
	Name    string          `toml:"name"`
	Balance decimal.Decimal `toml:"balance"`
	APR     decimal.Decimal `toml:"apr"`
	Minimum decimal.Decimal `toml:"minimum"`
}

func loadDebtFile(path string) ([]payoff.Debt, error) {
	var f debtFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return f.toPayoff(md)
}

func parseDebts(data string) ([]payoff.Debt, error) {
	var f debtFile
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, err
	}
	return f.toPayoff(md)
}

func (f *debtFile) toPayoff(md toml.MetaData) ([]payoff.Debt, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if len(f.Debts) == 0 {
		return nil, errNoDebts
	}

	debts := make([]payoff.Debt, 0, len(f.Debts))
	for i, d := range f.Debts {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("debt #%d: name is required", i+1)
		}
		id := d.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		debts = append(debts, payoff.Debt{
			ID:             id,
			Name:           d.Name,
			Balance:        d.Balance,
			APR:            d.APR,
			MinimumPayment: d.Minimum,
		})
	}
	return debts, nil
}
