package store

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	bolt "go.etcd.io/bbolt"

	"github.com/payra-dev/payra/internal/model"
)

// GoalParams are the caller-supplied fields of a new goal.
type GoalParams struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
}

func (p GoalParams) validate() error {
	var v validator
	v.length("name", p.Name, 1, MaxGoalNameLen)
	if !p.TargetAmount.IsPositive() {
		v.add("target", "must be greater than zero")
	} else {
		v.amount("target", p.TargetAmount, MaxGoalAmount)
	}
	v.amount("current", p.CurrentAmount, MaxGoalAmount)
	return v.err()
}

// CreateGoal stores a new savings goal.
func (s *Store) CreateGoal(p GoalParams) (model.Goal, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.validate(); err != nil {
		return model.Goal{}, err
	}

	g := model.Goal{
		ID:            uuid.New(),
		Name:          p.Name,
		TargetAmount:  p.TargetAmount,
		CurrentAmount: p.CurrentAmount,
		Completed:     p.CurrentAmount.GreaterThanOrEqual(p.TargetAmount),
		CreatedAt:     s.now(),
	}
	if p.Deadline != nil {
		d := dateOnly(*p.Deadline)
		g.Deadline = &d
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return putRecord(tx, BucketGoals, g.ID, g)
	})
	if err != nil {
		return model.Goal{}, fmt.Errorf("creating goal: %w", err)
	}
	return g, nil
}

// FetchGoals returns all goals, newest first.
func (s *Store) FetchGoals() ([]model.Goal, error) {
	var goals []model.Goal
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		goals, err = listRecords[model.Goal](tx, BucketGoals)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching goals: %w", err)
	}
	slices.SortFunc(goals, func(a, b model.Goal) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return goals, nil
}

// Contribute adds amount to a goal's current amount and marks it completed
// once the target is reached.
func (s *Store) Contribute(id uuid.UUID, amount decimal.Decimal) (model.Goal, error) {
	if !amount.IsPositive() {
		return model.Goal{}, ValidationError{Field: "amount", Message: "must be greater than zero"}
	}

	var g model.Goal
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		g, err = getRecord[model.Goal](tx, BucketGoals, id)
		if err != nil {
			return err
		}
		g.CurrentAmount = g.CurrentAmount.Add(amount)
		if g.CurrentAmount.GreaterThan(MaxGoalAmount) {
			return ValidationError{Field: "amount", Message: fmt.Sprintf("goal total must not exceed %s", MaxGoalAmount.StringFixed(2))}
		}
		g.Completed = g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
		return putRecord(tx, BucketGoals, g.ID, g)
	})
	if err != nil {
		return model.Goal{}, fmt.Errorf("contributing to goal: %w", err)
	}
	return g, nil
}

// DeleteGoal removes a goal.
func (s *Store) DeleteGoal(id uuid.UUID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return deleteRecord(tx, BucketGoals, id)
	})
}
