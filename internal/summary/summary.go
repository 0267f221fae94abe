// Package summary aggregates transactions into a spending overview.
package summary

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payra-dev/payra/internal/model"
)

// CategorySpend is the expense total for one category.
type CategorySpend struct {
	Category   model.Category
	Spent      decimal.Decimal
	Count      int
	Remaining  decimal.Decimal // budget minus spent; zero when no budget
	OverBudget bool
}

// Summary is the spending overview for a set of transactions.
type Summary struct {
	Income        decimal.Decimal
	Expenses      decimal.Decimal
	Net           decimal.Decimal
	Categories    []CategorySpend
	Uncategorized decimal.Decimal

	// SpendRatio is Expenses / monthly income, set only when HasIncome.
	SpendRatio float64
	HasIncome  bool
}

// Build summarises txns. Categories with spending or a budget are listed,
// largest spend first. Expenses pointing at an unknown category count as
// uncategorized. Transfers are ignored. user may be nil.
func Build(txns []model.Transaction, cats []model.Category, user *model.User) Summary {
	s := Summary{}
	byID := make(map[uuid.UUID]*CategorySpend, len(cats))
	rows := make([]*CategorySpend, 0, len(cats))
	for _, c := range cats {
		cs := &CategorySpend{Category: c}
		byID[c.ID] = cs
		rows = append(rows, cs)
	}

	for _, t := range txns {
		switch t.Kind {
		case model.KindIncome:
			s.Income = s.Income.Add(t.Amount)
		case model.KindExpense:
			s.Expenses = s.Expenses.Add(t.Amount)
			var cs *CategorySpend
			if t.CategoryID != nil {
				cs = byID[*t.CategoryID]
			}
			if cs == nil {
				s.Uncategorized = s.Uncategorized.Add(t.Amount)
				continue
			}
			cs.Spent = cs.Spent.Add(t.Amount)
			cs.Count++
		}
	}
	s.Net = s.Income.Sub(s.Expenses)

	for _, cs := range rows {
		if cs.Count == 0 && !cs.Category.HasBudget() {
			continue
		}
		if cs.Category.HasBudget() {
			cs.Remaining = cs.Category.BudgetLimit.Sub(cs.Spent)
			cs.OverBudget = cs.Spent.GreaterThan(cs.Category.BudgetLimit)
		}
		s.Categories = append(s.Categories, *cs)
	}
	slices.SortFunc(s.Categories, func(a, b CategorySpend) int {
		if c := b.Spent.Cmp(a.Spent); c != 0 {
			return c
		}
		return strings.Compare(a.Category.Name, b.Category.Name)
	})

	if user != nil && user.MonthlyIncome.IsPositive() {
		s.HasIncome = true
		s.SpendRatio = s.Expenses.Div(user.MonthlyIncome).InexactFloat64()
	}
	return s
}
