package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *CategoryCache {
	t.Helper()
	c, err := NewCategoryCache(newTestStore(t))
	require.NoError(t, err)
	t.Cleanup(func() { c.cache.Close() })
	return c
}

func TestCategoryCache_InvalidatesOnWrite(t *testing.T) {
	c := newTestCache(t)

	cats, err := c.FetchCategories()
	require.NoError(t, err)
	assert.Empty(t, cats)

	food, err := c.CreateCategory(CategoryParams{Name: "Food & Dining"})
	require.NoError(t, err)

	cats, err = c.FetchCategories()
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, food.ID, cats[0].ID)

	got, err := c.CategoryByName("Food & Dining")
	require.NoError(t, err)
	assert.Equal(t, food.ID, got.ID)

	require.NoError(t, c.DeleteCategory(food.ID))
	cats, err = c.FetchCategories()
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = c.CategoryByName("Food & Dining")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryCache_SeedDefaults(t *testing.T) {
	c := newTestCache(t)
	_, err := c.FetchCategories()
	require.NoError(t, err)

	n, err := c.SeedDefaults()
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	cats, err := c.FetchCategories()
	require.NoError(t, err)
	assert.Len(t, cats, 10)
}

func TestCategoryCache_ReturnsCopies(t *testing.T) {
	c := newTestCache(t)
	_, err := c.CreateCategory(CategoryParams{Name: "Travel"})
	require.NoError(t, err)

	first, err := c.FetchCategories()
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := c.FetchCategories()
	require.NoError(t, err)
	assert.Equal(t, "Travel", second[0].Name)
}

func TestCategoryCache_SatisfiesTransactionWrites(t *testing.T) {
	c := newTestCache(t)
	tx, err := c.CreateTransaction(TransactionParams{Amount: dec("3"), Date: testNow, Kind: "expense"})
	require.NoError(t, err)

	got, err := c.GetTransaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
}
