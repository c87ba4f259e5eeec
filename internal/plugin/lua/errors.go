package lua

import "github.com/cockroachdb/errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrInstructionLimit is returned when a script exceeds its host call budget.
	ErrInstructionLimit = errors.New("lua instruction limit exceeded")
)
