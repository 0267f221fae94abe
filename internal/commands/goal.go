package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/payra-dev/payra/internal/store"
)

func newGoalCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Track savings goals",
	}
	cmd.AddCommand(
		newGoalAddCommand(opts),
		newGoalListCommand(opts),
		newGoalContributeCommand(opts),
		newGoalDeleteCommand(opts),
	)
	return cmd
}

func newGoalAddCommand(opts *rootOptions) *cobra.Command {
	var target, deadline string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			p := store.GoalParams{Name: args[0]}
			if p.TargetAmount, err = parseAmount(target); err != nil {
				return err
			}
			if deadline != "" {
				d, err := parseDay(deadline)
				if err != nil {
					return err
				}
				p.Deadline = &d
			}
			g, err := a.store.CreateGoal(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added goal %s: %s (%s)\n", g.Name, a.money(g.TargetAmount), g.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target amount (required)")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline as YYYY-MM-DD")
	return cmd
}

func newGoalListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			goals, err := a.store.FetchGoals()
			if err != nil {
				return err
			}
			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSAVED\tTARGET\tPROGRESS\tDUE")
			for _, g := range goals {
				due := "-"
				if days, ok := g.DaysRemaining(now); ok {
					due = fmt.Sprintf("%d days", days)
				}
				if g.Completed {
					due = "done"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f%%\t%s\n", g.ID, g.Name, a.money(g.CurrentAmount), a.money(g.TargetAmount), g.Progress()*100, due)
			}
			return w.Flush()
		},
	}
}

func newGoalContributeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <id> <amount>",
		Short: "Add money to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			g, err := a.store.Contribute(id, amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s of %s (%.0f%%)\n", g.Name, a.money(g.CurrentAmount), a.money(g.TargetAmount), g.Progress()*100)
			if g.Completed {
				fmt.Fprintln(cmd.OutOrStdout(), "Goal reached!")
			}
			return nil
		},
	}
}

func newGoalDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
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

			if err := a.store.DeleteGoal(id); err != nil {
				return fmt.Errorf("deleting goal %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %s\n", id)
			return nil
		},
	}
}
