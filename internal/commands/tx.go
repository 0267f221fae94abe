package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/payra-dev/payra/internal/model"
	"github.com/payra-dev/payra/internal/store"
)

func newTxCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record and browse transactions",
	}
	cmd.AddCommand(newTxAddCommand(opts), newTxListCommand(opts), newTxDeleteCommand(opts))
	return cmd
}

func newTxAddCommand(opts *rootOptions) *cobra.Command {
	var (
		amount    string
		date      string
		kind      string
		category  string
		notes     string
		frequency string
	)

	cmd := &cobra.Command{
		Use:   "add <merchant>",
		Short: "Record a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			p := store.TransactionParams{
				Merchant:           args[0],
				Kind:               model.Kind(kind),
				Notes:              notes,
				Recurring:          frequency != "",
				RecurringFrequency: frequency,
			}
			if p.Amount, err = parseAmount(amount); err != nil {
				return err
			}
			if p.Date, err = parseDay(date); err != nil {
				return err
			}
			if category != "" {
				c, err := a.store.CategoryByName(category)
				if err != nil {
					return err
				}
				p.CategoryID = &c.ID
			}

			t, err := a.store.CreateTransaction(p)
			if err != nil {
				return err
			}
			a.logger.Info("added transaction", "id", t.ID, "kind", t.Kind)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s (%s)\n", t.Kind, a.money(t.Amount), t.Merchant, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount, always positive (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&kind, "kind", string(model.KindExpense), "income, expense or transfer")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&frequency, "recurring", "", "mark as recurring with this frequency, e.g. monthly")
	return cmd
}

func newTxListCommand(opts *rootOptions) *cobra.Command {
	var (
		rangeName string
		search    string
		kind      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := model.ParseDateRange(rangeName)
			if err != nil {
				return err
			}
			if kind != "" && !model.Kind(kind).Valid() {
				return fmt.Errorf("unknown kind %q", kind)
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			txns, err := a.store.SearchTransactions(r, search, model.Kind(kind))
			if err != nil {
				return err
			}
			cats, err := a.store.FetchCategories()
			if err != nil {
				return err
			}
			names := make(map[uuid.UUID]string, len(cats))
			for _, c := range cats {
				names[c.ID] = c.Name
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tMERCHANT\tAMOUNT\tCATEGORY\tNOTES")
			for _, t := range txns {
				category := "-"
				if t.CategoryID != nil {
					category = names[*t.CategoryID]
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date.Format(dateFormat), t.Merchant, formatMoney(t.Signed()), category, t.Notes)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&rangeName, "range", string(model.RangeAll), "this-month, last-month or all")
	cmd.Flags().StringVar(&search, "search", "", "match merchant, notes or category name")
	cmd.Flags().StringVar(&kind, "kind", "", "only this kind")
	return cmd
}

func newTxDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.DeleteTransaction(id); err != nil {
				return fmt.Errorf("deleting transaction %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %s\n", id)
			return nil
		},
	}
}
