package store

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/payra-dev/payra/internal/model"
)

// ReminderParams are the caller-supplied fields of a new reminder.
type ReminderParams struct {
	Date          time.Time
	Type          model.ReminderType
	Title         string
	Message       string
	TransactionID *uuid.UUID
}

// CreateReminder stores a new, enabled reminder.
func (s *Store) CreateReminder(p ReminderParams) (model.Reminder, error) {
	p.Title = strings.TrimSpace(p.Title)

	var v validator
	v.length("title", p.Title, 1, MaxGoalNameLen)
	if !p.Type.Valid() {
		v.add("type", "unknown reminder type %q", p.Type)
	}
	if p.Date.IsZero() {
		v.add("date", "is required")
	}
	v.length("message", p.Message, 0, MaxNotesLen)
	if err := v.err(); err != nil {
		return model.Reminder{}, err
	}

	r := model.Reminder{
		ID:            uuid.New(),
		Date:          p.Date.UTC(),
		Type:          p.Type,
		Title:         p.Title,
		Message:       p.Message,
		TransactionID: p.TransactionID,
		Enabled:       true,
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return putRecord(tx, BucketReminders, r.ID, r)
	})
	if err != nil {
		return model.Reminder{}, fmt.Errorf("creating reminder: %w", err)
	}
	return r, nil
}

// FetchReminders returns all reminders, earliest first.
func (s *Store) FetchReminders() ([]model.Reminder, error) {
	var rs []model.Reminder
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		rs, err = listRecords[model.Reminder](tx, BucketReminders)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching reminders: %w", err)
	}
	slices.SortFunc(rs, func(a, b model.Reminder) int {
		return a.Date.Compare(b.Date)
	})
	return rs, nil
}

// DeleteReminder removes a reminder.
func (s *Store) DeleteReminder(id uuid.UUID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return deleteRecord(tx, BucketReminders, id)
	})
}
