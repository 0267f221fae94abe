package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	bolt "go.etcd.io/bbolt"

	"github.com/payra-dev/payra/internal/model"
)

// The single local profile is stored under a fixed key.
var userKey = uuid.Nil

// UserParams are the caller-supplied fields of the local profile.
type UserParams struct {
	Email         string
	MonthlyIncome decimal.Decimal
}

// CreateUser stores the local profile. Only one user may exist.
func (s *Store) CreateUser(p UserParams) (model.User, error) {
	var v validator
	v.amount("income", p.MonthlyIncome, MaxGoalAmount)
	if err := v.err(); err != nil {
		return model.User{}, err
	}

	u := model.User{
		ID:            uuid.New(),
		Email:         strings.TrimSpace(p.Email),
		MonthlyIncome: p.MonthlyIncome,
		CreatedAt:     s.now(),
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		if _, err := getRecord[model.User](tx, BucketUser, userKey); err == nil {
			return fmt.Errorf("%w: user already exists", ErrDuplicate)
		}
		return putRecord(tx, BucketUser, userKey, u)
	})
	if err != nil {
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// FetchUser returns the local profile, or ErrNotFound before onboarding.
func (s *Store) FetchUser() (model.User, error) {
	var u model.User
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		u, err = getRecord[model.User](tx, BucketUser, userKey)
		return err
	})
	return u, err
}

// SetOnboarded records whether onboarding has been completed.
func (s *Store) SetOnboarded(done bool) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		u, err := getRecord[model.User](tx, BucketUser, userKey)
		if err != nil {
			return err
		}
		u.Onboarded = done
		return putRecord(tx, BucketUser, userKey, u)
	})
}
