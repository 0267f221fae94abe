package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups transactions and optionally caps monthly spending.
type Category struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	BudgetLimit decimal.Decimal `json:"budget_limit"` // zero = no limit
	ColorHex    string          `json:"color_hex,omitempty"`
	IconName    string          `json:"icon_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HasBudget reports whether a budget ceiling is set.
func (c Category) HasBudget() bool {
	return c.BudgetLimit.IsPositive()
}
