package payoff

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy decides which active debt receives the pooled extra payment.
type Strategy string

const (
	// Avalanche targets the highest APR first.
	Avalanche Strategy = "avalanche"
	// Snowball targets the smallest balance first.
	Snowball Strategy = "snowball"
)

var ErrInvalidStrategy = errors.New("strategy must be avalanche or snowball")

// Strategies lists the supported strategies in comparison order.
var Strategies = []Strategy{Avalanche, Snowball}

// ParseStrategy normalizes s and rejects anything outside the closed set.
// An empty value is an error; there is no default strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case Avalanche:
		return Avalanche, nil
	case Snowball:
		return Snowball, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
	}
}

// Valid reports whether s is one of the supported strategies.
func (s Strategy) Valid() bool {
	return s == Avalanche || s == Snowball
}

func (s Strategy) String() string {
	return string(s)
}

// less is the priority comparator. It must be used with a stable sort so
// that ties keep the input order.
func (s Strategy) less(a, b Debt) bool {
	switch s {
	case Avalanche:
		return a.APR.GreaterThan(b.APR)
	case Snowball:
		return a.Balance.LessThan(b.Balance)
	default:
		return false
	}
}
