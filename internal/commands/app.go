package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/payra-dev/payra/internal/config"
	"github.com/payra-dev/payra/internal/store"
)

const dateFormat = "2006-01-02"

// app is the per-invocation state built from --home: config, logger and
// the open record store.
type app struct {
	home   string
	cfg    *config.Config
	logger *log.Logger
	store  *store.CategoryCache
}

func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	home, err := filepath.Abs(opts.home)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadHome(home)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no payra home at %s (run payra init): %w", home, err)
		}
		return nil, err
	}

	logger, err := newLogger(cmd, opts.logLevel, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(cfg.StorePath(home))
	if err != nil {
		return nil, err
	}
	cache, err := store.NewCategoryCache(s)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	logger.Debug("opened store", "path", s.Path())

	return &app{home: home, cfg: cfg, logger: logger, store: cache}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// newLogger builds the stderr logger. The flag wins over the config value.
func newLogger(cmd *cobra.Command, flagLevel, cfgLevel string) (*log.Logger, error) {
	name := cfgLevel
	if flagLevel != "" {
		name = flagLevel
	}
	if name == "" {
		name = "info"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "payra",
		Level:  level,
	}), nil
}

// money formats d with thousands separators and the configured currency.
func (a *app) money(d decimal.Decimal) string {
	return formatMoney(d) + " " + a.cfg.Currency
}

func formatMoney(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// parseDay parses YYYY-MM-DD; an empty string means today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}
