package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal is a savings target.
type Goal struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Completed     bool            `json:"completed"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Progress returns CurrentAmount/TargetAmount clamped to [0, 1].
func (g Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	p := g.CurrentAmount.Div(g.TargetAmount).InexactFloat64()
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// DaysRemaining returns whole days from now until the deadline, or false
// when there is no deadline.
func (g Goal) DaysRemaining(now time.Time) (int, bool) {
	if g.Deadline == nil {
		return 0, false
	}
	return int(g.Deadline.Sub(now).Hours() / 24), true
}
