package nav

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches every ValidationError.
	ErrValidation = errors.New("form incomplete")
	// ErrPoolExhausted means every outfit slot is in use.
	ErrPoolExhausted = errors.New("cannot add more outfits")
	// ErrWearRowsExhausted means every wear row of the form is in use.
	ErrWearRowsExhausted = errors.New("cannot add more wear items")
	// ErrInvalidTransition matches every TransitionError.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrNotFound means a looked-up outfit or wear item does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotRestored is returned for events received before Restore.
	ErrNotRestored = errors.New("catalogue not restored yet")
	// ErrPrecondition matches every PreconditionError.
	ErrPrecondition = errors.New("precondition violated")
)

// ValidationError lists what the form still needs before it can be submitted.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrValidation, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// TransitionError reports an event that is not legal in the current state.
type TransitionError struct {
	Event string
	From  State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// PreconditionError reports a reference that cannot exist, such as opening
// an empty slot. In strict mode the coordinator panics with it.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPrecondition, e.Msg)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }
