// Package export writes stored transactions as CSV that the importer can
// read back.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/payra-dev/payra/internal/model"
)

// Header is the exported CSV header.
const Header = "Date,Description,Amount,Kind,Category,Notes"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colDate    = 0
	colDesc    = 1
	colAmount  = 2
	colKind    = 3
	colCat     = 4
	colNotes   = 5
)

// WriteTransactions writes a header followed by one row per transaction.
// Amounts are signed so that expenses re-import as expenses.
func WriteTransactions(w io.Writer, txns []model.Transaction, cats []model.Category) error {
	names := make(map[uuid.UUID]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t, names)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a transaction to a CSV row. categoryNames maps
// category IDs to names; unknown IDs leave the column empty.
func MarshalTransaction(t model.Transaction, categoryNames map[uuid.UUID]string) []string {
	row := make([]string, numFields)
	row[colDate] = t.Date.Format(dateFormat)
	row[colDesc] = t.Merchant
	row[colAmount] = t.Signed().StringFixed(2)
	row[colKind] = string(t.Kind)
	if t.CategoryID != nil {
		row[colCat] = categoryNames[*t.CategoryID]
	}
	row[colNotes] = t.Notes
	return row
}
