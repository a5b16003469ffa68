// Package fault defines the error taxonomy shared by the scheduling core and
// its collaborators.
//
// Callers check errors with errors.Is:
//
//	if errors.Is(err, fault.ErrInvalidArgument) { ... }
package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed input: an unknown grade, a negative
	// count, a malformed date. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvariantViolation marks input state that breaks a precondition the
	// core relies on, which means upstream data is corrupted.
	ErrInvariantViolation = errors.New("invariant violation")
)

// InvalidArgument returns an error wrapping ErrInvalidArgument.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// InvariantViolation returns an error wrapping ErrInvariantViolation.
func InvariantViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// Class labels an error for metrics and structured logs.
type Class string

const (
	ClassNone               Class = ""
	ClassInvalidArgument    Class = "invalid_argument"
	ClassInvariantViolation Class = "invariant_violation"
	ClassInternal           Class = "internal"
)

// ClassOf reports which class err belongs to.
func ClassOf(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrInvalidArgument):
		return ClassInvalidArgument
	case errors.Is(err, ErrInvariantViolation):
		return ClassInvariantViolation
	default:
		return ClassInternal
	}
}
