// Package session runs one CSV import at a time: parse a file into a batch,
// let the caller review it, then commit the batch to the record store.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/payra-dev/payra/internal/categorize"
	"github.com/payra-dev/payra/internal/importer"
	"github.com/payra-dev/payra/internal/model"
	"github.com/payra-dev/payra/internal/store"
)

// ImportNote is attached to every transaction created from a CSV row.
const ImportNote = "Imported from CSV"

// ErrNoBatch is returned by Commit when nothing has been parsed.
var ErrNoBatch = errors.New("no import batch to commit")

// RecordStore is the subset of the record store the coordinator writes to.
type RecordStore interface {
	CreateTransaction(store.TransactionParams) (model.Transaction, error)
	FetchCategories() ([]model.Category, error)
}

// Batch is a parsed file awaiting review.
type Batch struct {
	Name         string
	Transactions []model.ParsedTransaction
	Skipped      []importer.SkippedRow
}

func (b *Batch) clone() *Batch {
	if b == nil {
		return nil
	}
	return &Batch{
		Name:         b.Name,
		Transactions: slices.Clone(b.Transactions),
		Skipped:      slices.Clone(b.Skipped),
	}
}

// CommitSummary reports what a successful Commit wrote.
type CommitSummary struct {
	Committed     int
	Uncategorized int
}

// CommitError reports the row that stopped a commit. Rows before Index
// were written and removed from the batch; the failing row and everything
// after it remain for a retry.
type CommitError struct {
	Index       int
	Description string
	Err         error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("committing row %d (%s): %v", e.Index, e.Description, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// Coordinator owns the single in-flight import batch.
type Coordinator struct {
	store   RecordStore
	matcher *categorize.Matcher
	logger  *log.Logger

	mu        sync.Mutex
	batch     *Batch
	importing bool
	progress  float64
}

// NewCoordinator returns a coordinator writing to rs. A nil matcher uses the
// default keyword rules; a nil logger discards output.
func NewCoordinator(rs RecordStore, matcher *categorize.Matcher, logger *log.Logger) *Coordinator {
	if matcher == nil {
		matcher = categorize.New(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{store: rs, matcher: matcher, logger: logger}
}

// Begin parses data as a new batch named name, replacing any uncommitted
// batch. On failure no batch is held and the parser's error is returned
// as is.
func (c *Coordinator) Begin(ctx context.Context, name string, data []byte) (*Batch, error) {
	c.mu.Lock()
	c.batch = nil
	c.importing = true
	c.progress = 0
	c.mu.Unlock()

	res, err := importer.Parse(data,
		importer.WithContext(ctx),
		importer.WithProgress(func(done, total int) {
			c.mu.Lock()
			c.progress = float64(done) / float64(total)
			c.mu.Unlock()
		}),
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.importing = false
	if err != nil {
		c.logger.Warn("import failed", "file", name, "error", err)
		return nil, err
	}

	c.batch = &Batch{Name: name, Transactions: res.Transactions, Skipped: res.Skipped}
	c.progress = 1
	c.logger.Info("parsed import", "file", name, "rows", len(res.Transactions), "skipped", len(res.Skipped))
	for _, s := range res.Skipped {
		c.logger.Debug("skipped row", "file", name, "line", s.Line, "reason", s.Reason)
	}
	return c.batch.clone(), nil
}

// BeginFile reads path and calls Begin with its base name.
func (c *Coordinator) BeginFile(ctx context.Context, path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c.Begin(ctx, filepath.Base(path), data)
}

// Importing reports whether a parse is in progress.
func (c *Coordinator) Importing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.importing
}

// Progress returns the fraction of rows parsed, in [0, 1].
func (c *Coordinator) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Batch returns a copy of the pending batch, or nil.
func (c *Coordinator) Batch() *Batch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batch.clone()
}

// Discard drops the pending batch without committing it.
func (c *Coordinator) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batch = nil
}

// Commit writes every pending row to the record store in file order.
//
// A row's category comes from overrides, keyed by exact description, or
// else from the matcher over the store's current categories. The first
// failing row stops the commit with a *CommitError; a cancelled ctx is
// checked between rows and stops it the same way.
func (c *Coordinator) Commit(ctx context.Context, overrides map[string]model.Category) (CommitSummary, error) {
	c.mu.Lock()
	batch := c.batch
	c.mu.Unlock()
	if batch == nil {
		return CommitSummary{}, ErrNoBatch
	}

	var sum CommitSummary
	for i, row := range batch.Transactions {
		if err := ctx.Err(); err != nil {
			return sum, c.fail(batch, i, row, err)
		}
		cat, ok, err := c.resolve(row.Description, overrides)
		if err != nil {
			return sum, c.fail(batch, i, row, err)
		}

		p := store.TransactionParams{
			Amount:   row.Amount,
			Date:     row.Date,
			Merchant: row.Description,
			Notes:    ImportNote,
			Kind:     row.Kind,
			Imported: true,
		}
		if ok {
			p.CategoryID = &cat.ID
		}
		if _, err := c.store.CreateTransaction(p); err != nil {
			return sum, c.fail(batch, i, row, err)
		}
		sum.Committed++
		if !ok {
			sum.Uncategorized++
		}
	}

	c.mu.Lock()
	if c.batch == batch {
		c.batch = nil
	}
	c.mu.Unlock()

	c.logger.Info("committed import", "file", batch.Name, "rows", sum.Committed, "uncategorized", sum.Uncategorized)
	return sum, nil
}

func (c *Coordinator) resolve(description string, overrides map[string]model.Category) (model.Category, bool, error) {
	if cat, ok := overrides[description]; ok {
		return cat, true, nil
	}
	cats, err := c.store.FetchCategories()
	if err != nil {
		return model.Category{}, false, fmt.Errorf("fetching categories: %w", err)
	}
	cat, ok := c.matcher.Match(description, cats)
	return cat, ok, nil
}

// fail trims the rows already written from the pending batch and builds the
// error for row i.
func (c *Coordinator) fail(batch *Batch, i int, row model.ParsedTransaction, err error) error {
	c.mu.Lock()
	if c.batch == batch {
		c.batch = &Batch{
			Name:         batch.Name,
			Transactions: slices.Clone(batch.Transactions[i:]),
			Skipped:      batch.Skipped,
		}
	}
	c.mu.Unlock()

	c.logger.Error("commit stopped", "file", batch.Name, "row", i, "committed", i, "error", err)
	return &CommitError{Index: i, Description: row.Description, Err: err}
}
