package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var countryCurrency = map[string]string{
	"USA":    "USD",
	"Canada": "CAD",
	"India":  "INR",
}

// CurrencyForCountry returns the ISO currency code for a country, USD when unknown.
func CurrencyForCountry(country string) string {
	if currency, ok := countryCurrency[country]; ok {
		return currency
	}
	return "USD"
}

// MonthRange returns the first day of the month and the first day of the next month, in UTC.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsBeforeDay reports whether day falls on a calendar day strictly before now.
func IsBeforeDay(day, now time.Time) bool {
	return StartOfDay(day).Before(StartOfDay(now.In(day.Location())))
}

// NotifyAt is the instant a reminder fires: midnight of the due date minus the offset.
func NotifyAt(dueDate time.Time, offsetMinutes int) time.Time {
	return StartOfDay(dueDate).Add(-time.Duration(offsetMinutes) * time.Minute)
}

// RoundMoney rounds to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders an amount with two decimals and thousands separators, e.g. 1,234.50.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, cents, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + cents
}

// DaysInMonth returns the number of days of the month.
func DaysInMonth(year, month int) int {
	start, next := MonthRange(year, month)
	return int(next.Sub(start).Hours() / 24)
}
