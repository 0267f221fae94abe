package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/payra-dev/payra/internal/export"
	"github.com/payra-dev/payra/internal/model"
	"github.com/payra-dev/payra/internal/store"
	"github.com/payra-dev/payra/internal/summary"
)

func newUserCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show the local profile",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.store.FetchUser()
			if err != nil {
				return fmt.Errorf("fetching user: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Email:          %s\n", u.Email)
			fmt.Fprintf(out, "Monthly income: %s\n", a.money(u.MonthlyIncome))
			fmt.Fprintf(out, "Onboarded:      %t\n", u.Onboarded)
			fmt.Fprintf(out, "Member since:   %s\n", humanize.Time(u.CreatedAt))
			return nil
		},
	})
	return cmd
}

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var rangeName string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, spending per category and budget status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := model.ParseDateRange(rangeName)
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			txns, err := a.store.FetchTransactions(r)
			if err != nil {
				return err
			}
			cats, err := a.store.FetchCategories()
			if err != nil {
				return err
			}
			var user *model.User
			if u, err := a.store.FetchUser(); err == nil {
				user = &u
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}

			a.printSummary(cmd.OutOrStdout(), r, summary.Build(txns, cats, user))
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeName, "range", string(model.RangeThisMonth), "this-month, last-month or all")
	return cmd
}

func (a *app) printSummary(out io.Writer, r model.DateRange, s summary.Summary) {
	fmt.Fprintf(out, "Summary (%s)\n", r)
	fmt.Fprintf(out, "  Income:   %s\n", a.money(s.Income))
	fmt.Fprintf(out, "  Expenses: %s\n", a.money(s.Expenses))
	fmt.Fprintf(out, "  Net:      %s\n", a.money(s.Net))
	if s.HasIncome {
		fmt.Fprintf(out, "  Spent %.1f%% of monthly income\n", s.SpendRatio*100)
	}

	if len(s.Categories) == 0 && s.Uncategorized.IsZero() {
		return
	}
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tSPENT\tBUDGET\tREMAINING\t")
	for _, c := range s.Categories {
		budget, remaining, flag := "-", "-", ""
		if c.Category.HasBudget() {
			budget = a.money(c.Category.BudgetLimit)
			remaining = a.money(c.Remaining)
		}
		if c.OverBudget {
			flag = "OVER"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Category.Name, a.money(c.Spent), budget, remaining, flag)
	}
	if !s.Uncategorized.IsZero() {
		fmt.Fprintf(w, "(uncategorized)\t%s\t-\t-\t\n", a.money(s.Uncategorized))
	}
	_ = w.Flush()
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var rangeName, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := model.ParseDateRange(rangeName)
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			txns, err := a.store.FetchTransactions(r)
			if err != nil {
				return err
			}
			cats, err := a.store.FetchCategories()
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return export.WriteTransactions(cmd.OutOrStdout(), txns, cats)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := export.WriteTransactions(f, txns, cats); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", output, err)
			}
			a.logger.Info("exported transactions", "file", output, "rows", len(txns))
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeName, "range", string(model.RangeAll), "this-month, last-month or all")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
