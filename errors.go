package lru

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is returned when a cache is created with a capacity
// that is not positive.
var ErrInvalidCapacity = errors.New("capacity must be positive")

func validateCapacity(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return nil
}

// InvariantError reports internal state that a correct cache can never
// reach. It is raised with panic, never returned.
type InvariantError struct {
	// Op is the public operation that observed the violation.
	Op string

	// Reason describes what was wrong.
	Reason string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("lru: invariant violated during %s: %s", e.Op,
		e.Reason)
}

func violated(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Reason: fmt.Sprintf(format, args...)})
}
