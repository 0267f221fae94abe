package store

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	bolt "go.etcd.io/bbolt"

	"github.com/payra-dev/payra/internal/model"
)

// TransactionParams are the caller-supplied fields of a new transaction.
type TransactionParams struct {
	Amount             decimal.Decimal
	Date               time.Time
	Merchant           string
	CategoryID         *uuid.UUID
	Notes              string
	Kind               model.Kind
	Recurring          bool
	RecurringFrequency string

	// Imported rows come from a bank export and are not held to
	// MaxTransactionAmount, which bounds manual entry only.
	Imported bool
}

func (p TransactionParams) validate() error {
	var v validator
	if p.Imported {
		v.nonNegative("amount", p.Amount)
	} else {
		v.amount("amount", p.Amount, MaxTransactionAmount)
	}
	if p.Date.IsZero() {
		v.add("date", "is required")
	}
	if !p.Kind.Valid() {
		v.add("kind", "unknown kind %q", p.Kind)
	}
	v.length("notes", p.Notes, 0, MaxNotesLen)
	return v.err()
}

// CreateTransaction validates and stores a new transaction. The date is
// kept as a calendar date.
func (s *Store) CreateTransaction(p TransactionParams) (model.Transaction, error) {
	if err := p.validate(); err != nil {
		return model.Transaction{}, err
	}

	t := model.Transaction{
		ID:                 uuid.New(),
		Amount:             p.Amount,
		Date:               dateOnly(p.Date),
		Merchant:           strings.TrimSpace(p.Merchant),
		CategoryID:         p.CategoryID,
		Notes:              p.Notes,
		Kind:               p.Kind,
		Recurring:          p.Recurring,
		RecurringFrequency: p.RecurringFrequency,
		CreatedAt:          s.now(),
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if t.CategoryID != nil {
			if _, err := getRecord[model.Category](tx, BucketCategories, *t.CategoryID); err != nil {
				if errors.Is(err, ErrNotFound) {
					return ValidationError{Field: "category", Message: fmt.Sprintf("category %s does not exist", *t.CategoryID)}
				}
				return err
			}
		}
		return putRecord(tx, BucketTransactions, t.ID, t)
	})
	if err != nil {
		return model.Transaction{}, fmt.Errorf("creating transaction: %w", err)
	}
	return t, nil
}

// GetTransaction returns the transaction with the given ID.
func (s *Store) GetTransaction(id uuid.UUID) (model.Transaction, error) {
	var t model.Transaction
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		t, err = getRecord[model.Transaction](tx, BucketTransactions, id)
		return err
	})
	return t, err
}

// FetchTransactions returns transactions within r, newest first.
func (s *Store) FetchTransactions(r model.DateRange) ([]model.Transaction, error) {
	return s.SearchTransactions(r, "", "")
}

// SearchTransactions returns transactions within r whose merchant, notes or
// category name contain query (case-insensitive), newest first. An empty
// query matches everything; an empty kind matches every kind.
func (s *Store) SearchTransactions(r model.DateRange, query string, kind model.Kind) ([]model.Transaction, error) {
	now := s.now()
	q := strings.ToLower(strings.TrimSpace(query))

	var out []model.Transaction
	err := s.db.View(func(tx *bolt.Tx) error {
		all, err := listRecords[model.Transaction](tx, BucketTransactions)
		if err != nil {
			return err
		}
		var names map[uuid.UUID]string
		if q != "" {
			cats, err := listRecords[model.Category](tx, BucketCategories)
			if err != nil {
				return err
			}
			names = make(map[uuid.UUID]string, len(cats))
			for _, c := range cats {
				names[c.ID] = strings.ToLower(c.Name)
			}
		}

		for _, t := range all {
			if !r.Contains(t.Date, now) {
				continue
			}
			if kind != "" && t.Kind != kind {
				continue
			}
			if q != "" && !matchesQuery(t, q, names) {
				continue
			}
			out = append(out, t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}

	slices.SortFunc(out, func(a, b model.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

func matchesQuery(t model.Transaction, q string, categoryNames map[uuid.UUID]string) bool {
	if strings.Contains(strings.ToLower(t.Merchant), q) || strings.Contains(strings.ToLower(t.Notes), q) {
		return true
	}
	if t.CategoryID != nil {
		return strings.Contains(categoryNames[*t.CategoryID], q)
	}
	return false
}

// DeleteTransaction removes a transaction.
func (s *Store) DeleteTransaction(id uuid.UUID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return deleteRecord(tx, BucketTransactions, id)
	})
}
