package progress

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyCompleted is returned when starting a challenge whose id or
	// concept is in the completed set and no replay was requested.
	ErrAlreadyCompleted = errors.New("challenge already completed")

	// ErrInvalidState is returned for commands that do not apply in the
	// current phase, e.g. submitting with no active challenge.
	ErrInvalidState = errors.New("invalid state")

	// ErrGameOver is returned for every gameplay command once sanity has
	// reached zero. It wraps ErrInvalidState.
	ErrGameOver = fmt.Errorf("%w: sanity depleted, game over", ErrInvalidState)
)

// InvariantError describes a state that escaped its documented bounds.
type InvariantError struct {
	Violations []string
}

func (e *InvariantError) Error() string {
	if len(e.Violations) == 1 {
		return "progress invariant violated: " + e.Violations[0]
	}
	return fmt.Sprintf("progress invariants violated (%d): %v", len(e.Violations), e.Violations)
}
