package store

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Limits enforced on create.
var (
	MaxTransactionAmount = decimal.RequireFromString("999999.99")
	MaxGoalAmount        = decimal.RequireFromString("9999999.99")
)

const (
	MaxCategoryNameLen = 50
	MaxGoalNameLen     = 100
	MaxNotesLen        = 200
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// validator collects field errors; the zero value is ready to use.
type validator struct {
	errs []error
}

func (v *validator) add(field, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) amount(field string, d, limit decimal.Decimal) {
	switch {
	case d.IsNegative():
		v.add(field, "must not be negative")
	case d.GreaterThan(limit):
		v.add(field, "must not exceed %s", limit.StringFixed(2))
	}
}

func (v *validator) nonNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		v.add(field, "must not be negative")
	}
}

func (v *validator) length(field, s string, minLen, maxLen int) {
	n := utf8.RuneCountInString(s)
	switch {
	case n < minLen && minLen == 1:
		v.add(field, "is required")
	case n < minLen:
		v.add(field, "must be at least %d characters", minLen)
	case n > maxLen:
		v.add(field, "must be at most %d characters", maxLen)
	}
}

// err returns the collected errors joined, or nil.
func (v *validator) err() error {
	return errors.Join(v.errs...)
}
