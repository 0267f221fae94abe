package summary

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payra-dev/payra/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func txn(amount string, kind model.Kind, cat *model.Category) model.Transaction {
	t := model.Transaction{ID: uuid.New(), Amount: dec(amount), Kind: kind, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	if cat != nil {
		t.CategoryID = &cat.ID
	}
	return t
}

func TestBuild(t *testing.T) {
	food := model.Category{ID: uuid.New(), Name: "Food & Dining", BudgetLimit: dec("100")}
	rent := model.Category{ID: uuid.New(), Name: "Housing"}
	travel := model.Category{ID: uuid.New(), Name: "Travel", BudgetLimit: dec("500")}
	idle := model.Category{ID: uuid.New(), Name: "Education"}
	gone := model.Category{ID: uuid.New(), Name: "Deleted"}

	txns := []model.Transaction{
		txn("2500", model.KindIncome, nil),
		txn("60", model.KindExpense, &food),
		txn("55.50", model.KindExpense, &food),
		txn("1200", model.KindExpense, &rent),
		txn("20", model.KindExpense, nil),
		txn("5", model.KindExpense, &gone),
		txn("300", model.KindTransfer, nil),
	}
	user := &model.User{MonthlyIncome: dec("4000")}

	s := Build(txns, []model.Category{food, rent, travel, idle}, user)

	assert.Equal(t, "2500.00", s.Income.StringFixed(2))
	assert.Equal(t, "1340.50", s.Expenses.StringFixed(2))
	assert.Equal(t, "1159.50", s.Net.StringFixed(2))
	assert.Equal(t, "25.00", s.Uncategorized.StringFixed(2))

	require.Len(t, s.Categories, 3)
	assert.Equal(t, "Housing", s.Categories[0].Category.Name)
	assert.Equal(t, "Food & Dining", s.Categories[1].Category.Name)
	assert.Equal(t, 2, s.Categories[1].Count)
	assert.True(t, s.Categories[1].OverBudget)
	assert.Equal(t, "-15.50", s.Categories[1].Remaining.StringFixed(2))

	assert.Equal(t, "Travel", s.Categories[2].Category.Name)
	assert.False(t, s.Categories[2].OverBudget)
	assert.Equal(t, "500.00", s.Categories[2].Remaining.StringFixed(2))

	require.True(t, s.HasIncome)
	assert.InDelta(t, 0.335125, s.SpendRatio, 1e-9)
}

func TestBuild_TiesByName(t *testing.T) {
	b := model.Category{ID: uuid.New(), Name: "B"}
	a := model.Category{ID: uuid.New(), Name: "A"}
	s := Build([]model.Transaction{txn("10", model.KindExpense, &b), txn("10", model.KindExpense, &a)}, []model.Category{b, a}, nil)

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "A", s.Categories[0].Category.Name)
	assert.False(t, s.HasIncome)
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil, nil, &model.User{})
	assert.True(t, s.Net.IsZero())
	assert.Empty(t, s.Categories)
	assert.False(t, s.HasIncome)
}
