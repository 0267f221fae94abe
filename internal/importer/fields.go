package importer

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Accepted header spellings, matched case-sensitively after trimming.
var (
	dateHeaders        = []string{"date", "Date", "DATE", "Transaction Date"}
	descriptionHeaders = []string{"description", "Description", "DESCRIPTION", "Merchant", "merchant", "MERCHANT", "Details", "details"}
	amountHeaders      = []string{"amount", "Amount", "AMOUNT", "Transaction Amount"}
)

// dateLayouts are tried in order; the first full match wins. Month and day
// accept one or two digits.
var dateLayouts = []string{
	"2006-1-2", // yyyy-MM-dd
	"1/2/2006", // MM/dd/yyyy
	"2/1/2006", // dd/MM/yyyy
	"2006/1/2", // yyyy/MM/dd
	"1-2-2006", // MM-dd-yyyy
	"2-1-2006", // dd-MM-yyyy
}

type columns struct {
	date        int
	description int
	amount      int
}

func (c columns) max() int {
	return max(c.date, c.description, c.amount)
}

func resolveColumns(header []string) (columns, error) {
	cols := columns{
		date:        findColumn(header, dateHeaders),
		description: findColumn(header, descriptionHeaders),
		amount:      findColumn(header, amountHeaders),
	}
	switch {
	case cols.date < 0:
		return cols, fmt.Errorf("%w: no date column", ErrInvalidFormat)
	case cols.description < 0:
		return cols, fmt.Errorf("%w: no description column", ErrInvalidFormat)
	case cols.amount < 0:
		return cols, fmt.Errorf("%w: no amount column", ErrInvalidFormat)
	}
	return cols, nil
}

func findColumn(header, names []string) int {
	for i, cell := range header {
		if slices.Contains(names, strings.TrimSpace(cell)) {
			return i
		}
	}
	return -1
}

// splitFields splits a data line on commas outside double quotes. Quote
// characters toggle the quoted state and are not kept.
func splitFields(s string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(fields, cur.String())
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseAmount(s string) (decimal.Decimal, bool) {
	clean := strings.NewReplacer("$", "", ",", "").Replace(s)
	d, err := decimal.NewFromString(strings.TrimSpace(clean))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
