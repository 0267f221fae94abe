package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/payra-dev/payra/internal/importer"
	"github.com/payra-dev/payra/internal/importlog"
	"github.com/payra-dev/payra/internal/model"
	"github.com/payra-dev/payra/internal/session"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var (
		commit   bool
		inbox    bool
		mappings []string
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Parse a bank CSV export, review it, and optionally commit it",
		Long: "Parse a bank CSV export and print the rows with their matched categories.\n" +
			"With --commit the rows are saved as transactions. With --inbox every CSV in\n" +
			"<home>/import is processed and committed files move to import/processed.",
		Args: func(cmd *cobra.Command, args []string) error {
			if inbox {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			overrides, err := a.parseMappings(mappings)
			if err != nil {
				return err
			}

			if !inbox {
				_, err := a.importFile(cmd, args[0], commit, overrides)
				return err
			}

			files, err := importer.Scan(a.home)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No CSV files in the import inbox.")
				return nil
			}
			var errs []error
			for _, f := range files {
				committed, err := a.importFile(cmd, f.Path, commit, overrides)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
					continue
				}
				if committed && a.cfg.Import.MoveProcessed {
					if err := importer.MarkProcessed(a.home, f.Name); err != nil {
						errs = append(errs, err)
					}
				}
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().BoolVar(&commit, "commit", false, "save the parsed rows as transactions")
	cmd.Flags().BoolVar(&inbox, "inbox", false, "process every CSV in <home>/import")
	cmd.Flags().StringArrayVar(&mappings, "map", nil, `assign a category to a description, "Description=Category" (repeatable)`)

	return cmd
}

// parseMappings turns "Description=Category" flags into commit overrides.
// The category must exist.
func (a *app) parseMappings(mappings []string) (map[string]model.Category, error) {
	if len(mappings) == 0 {
		return nil, nil
	}
	out := make(map[string]model.Category, len(mappings))
	for _, m := range mappings {
		desc, name, ok := strings.Cut(m, "=")
		if !ok || desc == "" || name == "" {
			return nil, fmt.Errorf("invalid --map %q (want Description=Category)", m)
		}
		cat, err := a.store.CategoryByName(name)
		if err != nil {
			return nil, fmt.Errorf("--map %q: %w", m, err)
		}
		out[desc] = cat
	}
	return out, nil
}

// importFile runs one import session and records it in the import log. It
// reports whether the batch was committed in full.
func (a *app) importFile(cmd *cobra.Command, path string, commit bool, overrides map[string]model.Category) (bool, error) {
	out := cmd.OutOrStdout()
	coord := session.NewCoordinator(a.store, a.cfg.Matcher(), a.logger)

	entry := importlog.Entry{Timestamp: time.Now(), File: path, Status: importlog.StatusFailed}
	defer func() {
		if err := importlog.Append(a.home, entry); err != nil {
			a.logger.Warn("failed to write import log", "error", err)
		}
	}()

	batch, err := coord.BeginFile(cmd.Context(), path)
	if err != nil {
		return false, err
	}
	entry.File = batch.Name
	entry.Parsed = len(batch.Transactions)
	entry.Skipped = len(batch.Skipped)
	entry.Status = importlog.StatusReviewed

	cats, err := a.store.FetchCategories()
	if err != nil {
		return false, err
	}
	a.printBatch(out, batch, cats, overrides)
	a.logger.Debug("review ready", "file", batch.Name, "progress", coord.Progress())

	if !commit {
		fmt.Fprintln(out, "Run again with --commit to save these transactions.")
		return false, nil
	}

	sum, err := coord.Commit(cmd.Context(), overrides)
	entry.Committed = sum.Committed
	if err != nil {
		entry.Status = importlog.StatusFailed
		return false, err
	}
	entry.Status = importlog.StatusCommitted
	fmt.Fprintf(out, "Committed %d transactions from %s (%d uncategorized).\n", sum.Committed, batch.Name, sum.Uncategorized)
	return true, nil
}

func (a *app) printBatch(out io.Writer, batch *session.Batch, cats []model.Category, overrides map[string]model.Category) {
	matcher := a.cfg.Matcher()
	fmt.Fprintf(out, "%s: %d rows parsed, %d skipped\n", batch.Name, len(batch.Transactions), len(batch.Skipped))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDESCRIPTION\tAMOUNT\tKIND\tCATEGORY")
	for _, row := range batch.Transactions {
		category := "-"
		if c, ok := overrides[row.Description]; ok {
			category = c.Name
		} else if c, ok := matcher.Match(row.Description, cats); ok {
			category = c.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.Date.Format(dateFormat), row.Description, formatMoney(row.Amount), row.Kind, category)
	}
	_ = w.Flush()

	for _, s := range batch.Skipped {
		fmt.Fprintf(out, "skipped line %d (%s): %s\n", s.Line, s.Reason, s.Text)
	}
}
