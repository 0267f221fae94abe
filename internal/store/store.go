// Package store persists payra records in a bbolt database file.
//
// Each record type lives in its own bucket, keyed by the record's UUID
// bytes and stored as JSON.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique field is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// Bucket names.
const (
	BucketTransactions = "transactions"
	BucketCategories   = "categories"
	BucketGoals        = "goals"
	BucketUser         = "user"
	BucketReminders    = "reminders"
)

var allBuckets = []string{BucketTransactions, BucketCategories, BucketGoals, BucketUser, BucketReminders}

// Store is the bbolt-backed record store.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for CreatedAt stamps and date-range queries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (or creates) the database at path and ensures all buckets exist.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

func bucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(name))
	if b == nil {
		return nil, fmt.Errorf("bucket %s not found", name)
	}
	return b, nil
}

func putRecord[T any](tx *bolt.Tx, name string, id uuid.UUID, v T) error {
	b, err := bucket(tx, name)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s record: %w", name, err)
	}
	return b.Put(id[:], data)
}

func getRecord[T any](tx *bolt.Tx, name string, id uuid.UUID) (T, error) {
	var v T
	b, err := bucket(tx, name)
	if err != nil {
		return v, err
	}
	data := b.Get(id[:])
	if data == nil {
		return v, ErrNotFound
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("unmarshaling %s record: %w", name, err)
	}
	return v, nil
}

func deleteRecord(tx *bolt.Tx, name string, id uuid.UUID) error {
	b, err := bucket(tx, name)
	if err != nil {
		return err
	}
	if b.Get(id[:]) == nil {
		return ErrNotFound
	}
	return b.Delete(id[:])
}

// listRecords decodes every value in the bucket. Values are only valid
// inside the transaction, so they are decoded immediately.
func listRecords[T any](tx *bolt.Tx, name string) ([]T, error) {
	b, err := bucket(tx, name)
	if err != nil {
		return nil, err
	}
	var out []T
	err = b.ForEach(func(k, v []byte) error {
		var rec T
		if err := json.Unmarshal(v, &rec); err != nil {
			return fmt.Errorf("unmarshaling %s record %x: %w", name, k, err)
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// dateOnly truncates t to midnight UTC of its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
