package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	bolt "go.etcd.io/bbolt"

	"github.com/payra-dev/payra/internal/model"
)

// CategoryParams are the caller-supplied fields of a new category.
type CategoryParams struct {
	Name        string
	BudgetLimit decimal.Decimal
	ColorHex    string
	IconName    string
}

func (p CategoryParams) validate() error {
	var v validator
	v.length("name", p.Name, 1, MaxCategoryNameLen)
	v.amount("budget", p.BudgetLimit, MaxTransactionAmount)
	return v.err()
}

// CreateCategory stores a new category. Names are unique and compared
// case-sensitively after trimming.
func (s *Store) CreateCategory(p CategoryParams) (model.Category, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.validate(); err != nil {
		return model.Category{}, err
	}

	c := model.Category{
		ID:          uuid.New(),
		Name:        p.Name,
		BudgetLimit: p.BudgetLimit,
		ColorHex:    p.ColorHex,
		IconName:    p.IconName,
		CreatedAt:   s.now(),
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		existing, err := listRecords[model.Category](tx, BucketCategories)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.Name == c.Name {
				return fmt.Errorf("%w: category %q already exists", ErrDuplicate, c.Name)
			}
		}
		return putRecord(tx, BucketCategories, c.ID, c)
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("creating category: %w", err)
	}
	return c, nil
}

// GetCategory returns the category with the given ID.
func (s *Store) GetCategory(id uuid.UUID) (model.Category, error) {
	var c model.Category
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		c, err = getRecord[model.Category](tx, BucketCategories, id)
		return err
	})
	return c, err
}

// FetchCategories returns all categories sorted by name.
func (s *Store) FetchCategories() ([]model.Category, error) {
	var cats []model.Category
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		cats, err = listRecords[model.Category](tx, BucketCategories)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	slices.SortFunc(cats, func(a, b model.Category) int {
		return strings.Compare(a.Name, b.Name)
	})
	return cats, nil
}

// CategoryByName returns the category with exactly the given name.
func (s *Store) CategoryByName(name string) (model.Category, error) {
	cats, err := s.FetchCategories()
	if err != nil {
		return model.Category{}, err
	}
	for _, c := range cats {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Category{}, fmt.Errorf("category %q: %w", name, ErrNotFound)
}

// DeleteCategory removes a category and clears it from every transaction
// that referenced it.
func (s *Store) DeleteCategory(id uuid.UUID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := deleteRecord(tx, BucketCategories, id); err != nil {
			return err
		}
		txns, err := listRecords[model.Transaction](tx, BucketTransactions)
		if err != nil {
			return err
		}
		for _, t := range txns {
			if t.CategoryID == nil || *t.CategoryID != id {
				continue
			}
			t.CategoryID = nil
			if err := putRecord(tx, BucketTransactions, t.ID, t); err != nil {
				return fmt.Errorf("unlinking transaction %s: %w", t.ID, err)
			}
		}
		return nil
	})
}
