package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/payra-dev/payra/internal/config"
	"github.com/payra-dev/payra/internal/importer"
	"github.com/payra-dev/payra/internal/store"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var (
		income       string
		email        string
		noCategories bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a payra home",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.home
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			params := store.UserParams{Email: email}
			if income != "" {
				if params.MonthlyIncome, err = parseAmount(income); err != nil {
					return err
				}
			}
			return runInit(cmd, absDir, params, !noCategories)
		},
	}

	cmd.Flags().StringVar(&income, "income", "", "monthly income")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().BoolVar(&noCategories, "no-categories", false, "skip the default categories")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, user store.UserParams, seed bool) error {
	dirs := []string{
		"logs",
		importer.InboxDir,
		importer.ProcessedDir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfgPath := filepath.Join(dir, config.FileName)
	cfg := config.Default()
	if _, err := os.Stat(cfgPath); err == nil {
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	} else if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	s, err := store.Open(cfg.StorePath(dir))
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.CreateUser(user); err != nil && !errors.Is(err, store.ErrDuplicate) {
		return err
	}

	seeded := 0
	if seed {
		if seeded, err = s.SeedDefaults(); err != nil {
			return err
		}
	}

	if err := s.SetOnboarded(true); err != nil {
		return fmt.Errorf("marking onboarded: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized payra home at %s (%d categories added)\n", dir, seeded)
	return nil
}
