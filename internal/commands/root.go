package commands

import (
	"github.com/spf13/cobra"

	"github.com/payra-dev/payra/internal/buildinfo"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	home     string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "payra",
		Short:   "Personal finance tracking with CSV import",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.home, "home", ".", "payra home directory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newImportCommand(opts),
		newHistoryCommand(opts),
		newCategoryCommand(opts),
		newTxCommand(opts),
		newGoalCommand(opts),
		newReminderCommand(opts),
		newUserCommand(opts),
		newSummaryCommand(opts),
		newExportCommand(opts),
	)

	return rootCmd
}
