package dfamin

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput matches every *MalformedInputError.
	ErrMalformedInput = errors.New("malformed input")

	// ErrPrecondition matches every *PreconditionError.
	ErrPrecondition = errors.New("precondition violated")
)

// MalformedInputError reports a required field that is absent or has the wrong shape.
type MalformedInputError struct {
	Key    string // Field name as it appears in the description
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed, nil when absent
}

func (e *MalformedInputError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("malformed input: field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("malformed input: field %q: %s (got %T)", e.Key, e.Reason, e.Value)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// PreconditionError reports a reference outside the declared states or alphabet.
type PreconditionError struct {
	Key    string // Field holding the reference
	Label  string // The offending state or symbol label
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violated: field %q: %s: %q", e.Key, e.Reason, e.Label)
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}
