package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User holds the profile of the single local user.
type User struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email,omitempty"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	Onboarded     bool            `json:"onboarded"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReminderType identifies what a reminder is about.
type ReminderType string

const (
	ReminderBill   ReminderType = "bill"
	ReminderBudget ReminderType = "budget"
	ReminderGoal   ReminderType = "goal"
)

// Valid reports whether t is a known reminder type.
func (t ReminderType) Valid() bool {
	switch t {
	case ReminderBill, ReminderBudget, ReminderGoal:
		return true
	}
	return false
}

// DisplayName returns a human label for the reminder type.
func (t ReminderType) DisplayName() string {
	switch t {
	case ReminderBill:
		return "Bill Reminder"
	case ReminderBudget:
		return "Budget Alert"
	case ReminderGoal:
		return "Goal Reminder"
	}
	return string(t)
}

// Reminder is a dated note, optionally tied to a transaction.
type Reminder struct {
	ID            uuid.UUID    `json:"id"`
	Date          time.Time    `json:"date"`
	Type          ReminderType `json:"type"`
	Title         string       `json:"title"`
	Message       string       `json:"message,omitempty"`
	TransactionID *uuid.UUID   `json:"transaction_id,omitempty"`
	Enabled       bool         `json:"enabled"`
}
