package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/payra-dev/payra/internal/model"
	"github.com/payra-dev/payra/internal/store"
)

func newReminderCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Manage bill, budget and goal reminders",
	}
	cmd.AddCommand(newReminderAddCommand(opts), newReminderListCommand(opts), newReminderDeleteCommand(opts))
	return cmd
}

func newReminderAddCommand(opts *rootOptions) *cobra.Command {
	var typ, date, message, txID string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			p := store.ReminderParams{Title: args[0], Type: model.ReminderType(typ), Message: message}
			if p.Date, err = parseDay(date); err != nil {
				return err
			}
			if txID != "" {
				id, err := parseID(txID)
				if err != nil {
					return err
				}
				if _, err := a.store.GetTransaction(id); err != nil {
					return fmt.Errorf("transaction %s: %w", id, err)
				}
				p.TransactionID = &id
			}

			r, err := a.store.CreateReminder(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q for %s (%s)\n", r.Type.DisplayName(), r.Title, r.Date.Format(dateFormat), r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", string(model.ReminderBill), "bill, budget or goal")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&message, "message", "", "reminder text")
	cmd.Flags().StringVar(&txID, "tx", "", "related transaction id")
	return cmd
}

func newReminderListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			rs, err := a.store.FetchReminders()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tWHEN\tTYPE\tTITLE")
			for _, r := range rs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Date.Format(dateFormat), humanize.Time(r.Date), r.Type.DisplayName(), r.Title)
			}
			return w.Flush()
		},
	}
}

func newReminderDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reminder",
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

			if err := a.store.DeleteReminder(id); err != nil {
				return fmt.Errorf("deleting reminder %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted reminder %s\n", id)
			return nil
		},
	}
}
