package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies the direction of money movement.
type Kind string

const (
	KindIncome   Kind = "income"
	KindExpense  Kind = "expense"
	KindTransfer Kind = "transfer"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer:
		return true
	}
	return false
}

// KindOf derives the kind from a signed amount: zero and positive amounts
// are income, negative amounts are expenses.
func KindOf(signed decimal.Decimal) Kind {
	if signed.IsNegative() {
		return KindExpense
	}
	return KindIncome
}

// Transaction is a persisted income or expense record.
type Transaction struct {
	ID                 uuid.UUID       `json:"id"`
	Amount             decimal.Decimal `json:"amount"` // always >= 0, direction is in Kind
	Date               time.Time       `json:"date"`
	Merchant           string          `json:"merchant"`
	CategoryID         *uuid.UUID      `json:"category_id,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Kind               Kind            `json:"kind"`
	Recurring          bool            `json:"recurring,omitempty"`
	RecurringFrequency string          `json:"recurring_frequency,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// Signed returns the amount with expenses negated.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ParsedTransaction is a CSV row that has been parsed but not yet committed.
type ParsedTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // magnitude only
	Kind        Kind
}
