// Package importlog keeps an append-only CSV history of import sessions in
// <home>/logs/import-log.csv.
package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Session outcomes.
const (
	StatusReviewed  = "reviewed"  // parsed, not committed
	StatusCommitted = "committed" // every row written
	StatusFailed    = "failed"    // parse or commit error
)

// Entry is one import session.
type Entry struct {
	Timestamp time.Time
	File      string
	Parsed    int
	Skipped   int
	Committed int
	Status    string
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,file,parsed,skipped,committed,status"

// Path is the log location relative to the payra home.
var Path = filepath.Join("logs", "import-log.csv")

const (
	numFields    = 6
	colTimestamp = 0
	colFile      = 1
	colParsed    = 2
	colSkipped   = 3
	colCommitted = 4
	colStatus    = 5
)

func marshal(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colFile] = e.File
	row[colParsed] = strconv.Itoa(e.Parsed)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	row[colCommitted] = strconv.Itoa(e.Committed)
	row[colStatus] = e.Status
	return row
}

func unmarshal(rec []string) (Entry, error) {
	ts, err := time.Parse(time.RFC3339, rec[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", rec[colTimestamp], err)
	}
	e := Entry{Timestamp: ts, File: rec[colFile], Status: rec[colStatus]}
	counts := []struct {
		dst *int
		col int
	}{{&e.Parsed, colParsed}, {&e.Skipped, colSkipped}, {&e.Committed, colCommitted}}
	for _, c := range counts {
		n, err := strconv.Atoi(rec[c.col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", rec[c.col], err)
		}
		*c.dst = n
	}
	return e, nil
}

// Append adds e to the log under home, writing the header on first use.
func Append(home string, e Entry) error {
	path := filepath.Join(home, Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if os.IsNotExist(statErr) {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := cw.Write(marshal(e)); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Read returns every entry under home, oldest first. A missing log yields
// no entries.
func Read(home string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(home, Path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()
	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
