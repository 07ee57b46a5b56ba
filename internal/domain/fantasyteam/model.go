package fantasyteam

import (
	"errors"
	"fmt"
)

const (
	DriverCount      = 5
	ConstructorCount = 2
)

var (
	ErrInvalidDriverCount      = errors.New("invalid driver count")
	ErrInvalidConstructorCount = errors.New("invalid constructor count")
	ErrDuplicateDriver         = errors.New("duplicate driver in team")
	ErrDuplicateConstructor    = errors.New("duplicate constructor in team")
	ErrExceededBudget          = errors.New("budget cap exceeded")
)

// Team is a 5-driver, 2-constructor fantasy selection. TotalCost is in tenths
// of a million; TotalPoints refers to one scored weekend. Immutable once
// returned by the optimizer or accepted from a user.
type Team struct {
	DriverIDs      []string
	ConstructorIDs []string
	TotalCost      int64
	TotalPoints    int
}

// Validate checks the structural invariant: exactly 5 distinct drivers,
// exactly 2 distinct constructors, total cost within budget.
func (t Team) Validate(budget int64) error {
	if len(t.DriverIDs) != DriverCount {
		return fmt.Errorf("%w: expected %d drivers, got %d", ErrInvalidDriverCount, DriverCount, len(t.DriverIDs))
	}
	if len(t.ConstructorIDs) != ConstructorCount {
		return fmt.Errorf("%w: expected %d constructors, got %d", ErrInvalidConstructorCount, ConstructorCount, len(t.ConstructorIDs))
	}

	seenDrivers := make(map[string]struct{}, DriverCount)
	for _, id := range t.DriverIDs {
		if id == "" {
			return fmt.Errorf("driver id is required")
		}
		if _, exists := seenDrivers[id]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateDriver, id)
		}
		seenDrivers[id] = struct{}{}
	}

	seenConstructors := make(map[string]struct{}, ConstructorCount)
	for _, id := range t.ConstructorIDs {
		if id == "" {
			return fmt.Errorf("constructor id is required")
		}
		if _, exists := seenConstructors[id]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateConstructor, id)
		}
		seenConstructors[id] = struct{}{}
	}

	if budget > 0 && t.TotalCost > budget {
		return fmt.Errorf("%w: cap=%d used=%d", ErrExceededBudget, budget, t.TotalCost)
	}

	return nil
}
