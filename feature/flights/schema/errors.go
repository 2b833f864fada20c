package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by a ValidationError for an absent required field.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidType is wrapped by a ValidationError for a value that cannot be coerced.
	ErrInvalidType = errors.New("invalid type")
)

// ValidationError identifies the raw record and field that failed validation.
type ValidationError struct {
	// Index is the position of the record in the raw batch.
	Index int
	// Field is the wire key of the offending field.
	Field string
	// Expected is the expected field type.
	Expected string
	// Err is ErrMissingField or ErrInvalidType, possibly wrapping the coercion error.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d: field %q (expected %s): %v", e.Index, e.Field, e.Expected, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
