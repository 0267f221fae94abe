package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/payra-dev/payra/internal/model"
	"github.com/payra-dev/payra/internal/store"
)

func newCategoryCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage spending categories",
	}
	cmd.AddCommand(newCategoryAddCommand(opts), newCategoryListCommand(opts), newCategoryDeleteCommand(opts))
	return cmd
}

func newCategoryAddCommand(opts *rootOptions) *cobra.Command {
	var budget, color, icon string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			p := store.CategoryParams{Name: args[0], ColorHex: color, IconName: icon}
			if budget != "" {
				if p.BudgetLimit, err = parseAmount(budget); err != nil {
					return err
				}
			}
			c, err := a.store.CreateCategory(p)
			if err != nil {
				return err
			}
			a.logger.Info("added category", "name", c.Name, "id", c.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&budget, "budget", "", "monthly budget limit")
	cmd.Flags().StringVar(&color, "color", "", "display colour, e.g. #FF6B6B")
	cmd.Flags().StringVar(&icon, "icon", "", "icon name")
	return cmd
}

func newCategoryListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories with this month's spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			cats, err := a.store.FetchCategories()
			if err != nil {
				return err
			}
			txns, err := a.store.FetchTransactions(model.RangeThisMonth)
			if err != nil {
				return err
			}
			spent := map[uuid.UUID]decimal.Decimal{}
			for _, t := range txns {
				if t.CategoryID != nil && t.Kind == model.KindExpense {
					spent[*t.CategoryID] = spent[*t.CategoryID].Add(t.Amount)
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPENT\tBUDGET\tCOLOR\tICON")
			for _, c := range cats {
				limit := "-"
				if c.HasBudget() {
					limit = a.money(c.BudgetLimit)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Name, a.money(spent[c.ID]), limit, c.ColorHex, c.IconName)
			}
			return w.Flush()
		},
	}
}

func newCategoryDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category; its transactions become uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.store.CategoryByName(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteCategory(c.ID); err != nil {
				return fmt.Errorf("deleting category: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", c.Name)
			return nil
		},
	}
}
