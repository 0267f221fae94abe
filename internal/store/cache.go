package store

import (
	"fmt"
	"slices"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"

	"github.com/payra-dev/payra/internal/model"
)

const categoriesKey = "categories"

// CategoryCache fronts the store with an in-memory copy of the category
// list. Category writes made through the cache invalidate it; writes made
// directly on the Store do not.
type CategoryCache struct {
	*Store
	cache *ristretto.Cache[string, []model.Category]
}

// NewCategoryCache wraps s.
func NewCategoryCache(s *Store) (*CategoryCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []model.Category]{
		NumCounters:        1000,
		MaxCost:            100,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating category cache: %w", err)
	}
	return &CategoryCache{Store: s, cache: c}, nil
}

// FetchCategories returns the cached category list, loading it on a miss.
// Callers get their own copy of the slice.
func (c *CategoryCache) FetchCategories() ([]model.Category, error) {
	if cats, ok := c.cache.Get(categoriesKey); ok {
		return slices.Clone(cats), nil
	}
	cats, err := c.Store.FetchCategories()
	if err != nil {
		return nil, err
	}
	c.cache.Set(categoriesKey, cats, 1)
	c.cache.Wait()
	return slices.Clone(cats), nil
}

// CategoryByName looks the name up in the cached list.
func (c *CategoryCache) CategoryByName(name string) (model.Category, error) {
	cats, err := c.FetchCategories()
	if err != nil {
		return model.Category{}, err
	}
	for _, cat := range cats {
		if cat.Name == name {
			return cat, nil
		}
	}
	return model.Category{}, fmt.Errorf("category %q: %w", name, ErrNotFound)
}

// CreateCategory creates a category and drops the cached list.
func (c *CategoryCache) CreateCategory(p CategoryParams) (model.Category, error) {
	cat, err := c.Store.CreateCategory(p)
	c.Invalidate()
	return cat, err
}

// DeleteCategory deletes a category and drops the cached list.
func (c *CategoryCache) DeleteCategory(id uuid.UUID) error {
	err := c.Store.DeleteCategory(id)
	c.Invalidate()
	return err
}

// SeedDefaults seeds the default categories and drops the cached list.
func (c *CategoryCache) SeedDefaults() (int, error) {
	n, err := c.Store.SeedDefaults()
	c.Invalidate()
	return n, err
}

// Invalidate drops the cached category list.
func (c *CategoryCache) Invalidate() {
	c.cache.Del(categoriesKey)
}

// Close releases the cache and closes the underlying store.
func (c *CategoryCache) Close() error {
	c.cache.Close()
	return c.Store.Close()
}
