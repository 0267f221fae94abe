package model

import (
	"fmt"
	"time"
)

// DateRange selects transactions by date relative to now.
type DateRange string

const (
	RangeThisMonth DateRange = "this-month"
	RangeLastMonth DateRange = "last-month"
	RangeAll       DateRange = "all"
)

// ParseDateRange validates a range name.
func ParseDateRange(s string) (DateRange, error) {
	switch r := DateRange(s); r {
	case RangeThisMonth, RangeLastMonth, RangeAll:
		return r, nil
	}
	return "", fmt.Errorf("unknown date range %q", s)
}

// Bounds returns the half-open UTC interval [start, end) for the calendar
// month of now. Transaction dates are stored as UTC midnight. For
// RangeAll both values are zero.
func (r DateRange) Bounds(now time.Time) (start, end time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	switch r {
	case RangeThisMonth:
		return first, first.AddDate(0, 1, 0)
	case RangeLastMonth:
		return first.AddDate(0, -1, 0), first
	}
	return time.Time{}, time.Time{}
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t, now time.Time) bool {
	start, end := r.Bounds(now)
	if start.IsZero() && end.IsZero() {
		return true
	}
	return !t.Before(start) && t.Before(end)
}
