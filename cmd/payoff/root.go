package main

import (
	"fmt"

	"github.com/segyhp/budget-planner/pkg/payoff"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type planFlags struct {
	file      string
	extra     string
	maxMonths int
	roll      bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "payoff",
		Short:         "Debt payoff planner",
		Long:          "Simulate avalanche and snowball payoff plans for the debts listed in a TOML file.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newSimulateCmd(), newCompareCmd())
	return root
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "debts.toml", "TOML file with [[debt]] tables")
	cmd.Flags().StringVarP(&f.extra, "extra", "e", "0", "Extra amount paid each month on top of the minimums")
	cmd.Flags().IntVar(&f.maxMonths, "max-months", payoff.DefaultMaxMonths, "Give up after this many months")
	cmd.Flags().BoolVar(&f.roll, "roll", false, "Roll minimums of paid-off debts into the extra payment")
}

// options parses the shared flags and loads the debt file.
func (f *planFlags) options(strategy payoff.Strategy) ([]payoff.Debt, payoff.Options, error) {
	extra, err := decimal.NewFromString(f.extra)
	if err != nil {
		return nil, payoff.Options{}, fmt.Errorf("invalid --extra %q: %w", f.extra, err)
	}
	if f.maxMonths <= 0 {
		return nil, payoff.Options{}, fmt.Errorf("--max-months must be greater than 0")
	}

	debts, err := loadDebtFile(f.file)
	if err != nil {
		return nil, payoff.Options{}, err
	}

	return debts, payoff.Options{
		Strategy:            strategy,
		ExtraMonthlyPayment: extra,
		MaxMonths:           f.maxMonths,
		RollFreedPayments:   f.roll,
	}, nil
}

func newSimulateCmd() *cobra.Command {
	var (
		flags    planFlags
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate one payoff strategy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := payoff.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			debts, opts, err := flags.options(s)
			if err != nil {
				return err
			}

			result, err := payoff.Simulate(debts, opts)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderResult(result))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "avalanche or snowball")
	_ = cmd.MarkFlagRequired("strategy")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run both strategies and recommend one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			debts, opts, err := flags.options("")
			if err != nil {
				return err
			}

			comparison, err := payoff.Compare(debts, opts)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderComparison(comparison))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
