package store

import (
	"errors"
	"fmt"
)

// DefaultCategories returns the starter categories created during init.
func DefaultCategories() []CategoryParams {
	return []CategoryParams{
		{Name: "Food & Dining", IconName: "fork.knife", ColorHex: "#FF6B6B"},
		{Name: "Transportation", IconName: "car.fill", ColorHex: "#4ECDC4"},
		{Name: "Shopping", IconName: "bag.fill", ColorHex: "#45B7D1"},
		{Name: "Entertainment", IconName: "gamecontroller.fill", ColorHex: "#96CEB4"},
		{Name: "Healthcare", IconName: "heart.fill", ColorHex: "#FFEAA7"},
		{Name: "Utilities", IconName: "bolt.fill", ColorHex: "#DDA0DD"},
		{Name: "Housing", IconName: "house.fill", ColorHex: "#98D8C8"},
		{Name: "Education", IconName: "book.fill", ColorHex: "#F7DC6F"},
		{Name: "Travel", IconName: "airplane", ColorHex: "#BB8FCE"},
		{Name: "Personal Care", IconName: "person.fill", ColorHex: "#85C1E9"},
	}
}

// SeedDefaults creates any default category that does not exist yet and
// returns how many were created.
func (s *Store) SeedDefaults() (int, error) {
	created := 0
	for _, p := range DefaultCategories() {
		_, err := s.CreateCategory(p)
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicate):
		default:
			return created, fmt.Errorf("seeding %s: %w", p.Name, err)
		}
	}
	return created, nil
}
