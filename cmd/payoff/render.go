package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/segyhp/budget-planner/pkg/payoff"
	"github.com/segyhp/budget-planner/pkg/utils"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DA702C"))
)

func renderResult(r *payoff.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(strings.ToUpper(r.Strategy.String())+" PLAN") + "\n")
	fmt.Fprintf(&b, "Total months:   %d\n", r.TotalMonths)
	fmt.Fprintf(&b, "Total interest: %s\n", utils.RoundMoney(r.TotalInterest).StringFixed(2))
	if !r.Converged {
		b.WriteString(warnStyle.Render(fmt.Sprintf("Not paid off within %d months", r.TotalMonths)) + "\n")
	}

	rows := make([][]string, 0, len(r.PayoffSchedule))
	for _, e := range r.PayoffSchedule {
		months := strconv.Itoa(e.PayoffMonths)
		if !e.PaidOff {
			months = "-"
		}
		rows = append(rows, []string{
			e.DebtName,
			months,
			utils.RoundMoney(e.InterestPaid).StringFixed(2),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Debt", "Months", "Interest").
		Rows(rows...)
	b.WriteString(t.String() + "\n")

	return b.String()
}

func renderComparison(c *payoff.Comparison) string {
	var b strings.Builder

	b.WriteString(renderResult(c.Avalanche))
	b.WriteString("\n")
	b.WriteString(renderResult(c.Snowball))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Recommended:    %s\n", c.Recommended)
	fmt.Fprintf(&b, "Interest saved: %s\n", utils.RoundMoney(c.InterestSaved).StringFixed(2))
	fmt.Fprintf(&b, "Months saved:   %d\n", c.MonthsSaved)

	return b.String()
}
