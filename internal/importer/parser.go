package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/payra-dev/payra/internal/model"
)

var (
	// ErrInvalidEncoding is returned when the file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	// ErrEmptyFile is returned when the file has no data line after the header.
	ErrEmptyFile = errors.New("file has no data rows")
	// ErrInvalidFormat is returned when a required column is missing from the header.
	ErrInvalidFormat = errors.New("unrecognized CSV format")
)

// Skip reasons reported in SkippedRow.
const (
	ReasonFields = "insufficient fields"
	ReasonDate   = "unparseable date"
	ReasonAmount = "unparseable amount"
)

// SkippedRow records a data line that was dropped during parsing.
type SkippedRow struct {
	Line   int // 1-based line number in the file
	Text   string
	Reason string
}

// Result is the outcome of a successful parse.
type Result struct {
	Transactions []model.ParsedTransaction
	Skipped      []SkippedRow
}

// ProgressFunc receives the number of data rows consumed so far and the total.
type ProgressFunc func(done, total int)

type options struct {
	ctx      context.Context
	progress ProgressFunc
}

// Option configures Parse.
type Option func(*options)

// WithProgress reports progress after every data row.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}

// WithContext makes Parse stop between rows once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

type line struct {
	num  int
	text string
}

// Parse reads a bank-exported CSV file. The header must name a date, a
// description and an amount column; rows that cannot be parsed are skipped
// and listed in Result.Skipped.
func Parse(data []byte, opts ...Option) (*Result, error) {
	o := options{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	lines := splitLines(strings.TrimPrefix(string(data), "\ufeff"))
	if len(lines) < 2 {
		return nil, ErrEmptyFile
	}

	cols, err := resolveColumns(strings.Split(lines[0].text, ","))
	if err != nil {
		return nil, err
	}

	rows := lines[1:]
	res := &Result{}
	for i, ln := range rows {
		if err := o.ctx.Err(); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", ln.num, err)
		}

		txn, reason := parseRow(splitFields(ln.text), cols)
		if reason != "" {
			res.Skipped = append(res.Skipped, SkippedRow{Line: ln.num, Text: ln.text, Reason: reason})
		} else {
			res.Transactions = append(res.Transactions, txn)
		}

		if o.progress != nil {
			o.progress(i+1, len(rows))
		}
	}
	return res, nil
}

// splitLines splits on \n, drops a trailing \r and ignores blank lines.
func splitLines(s string) []line {
	var out []line
	for i, text := range strings.Split(s, "\n") {
		text = strings.TrimSuffix(text, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, line{num: i + 1, text: text})
	}
	return out
}

func parseRow(fields []string, cols columns) (model.ParsedTransaction, string) {
	if len(fields) <= cols.max() {
		return model.ParsedTransaction{}, ReasonFields
	}

	date, ok := parseDate(strings.TrimSpace(fields[cols.date]))
	if !ok {
		return model.ParsedTransaction{}, ReasonDate
	}

	amount, ok := parseAmount(fields[cols.amount])
	if !ok {
		return model.ParsedTransaction{}, ReasonAmount
	}

	return model.ParsedTransaction{
		Date:        date,
		Description: strings.TrimSpace(fields[cols.description]),
		Amount:      amount.Abs(),
		Kind:        model.KindOf(amount),
	}, ""
}
