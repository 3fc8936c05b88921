package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Schema errors
	ErrColumnNotFound = errors.New("column not found")
	ErrEmptyColumnSet = errors.New("no columns requested")

	// Type errors
	ErrNotNumeric = errors.New("column is not numeric")
)

// NewSchemaError reports a required column that is absent from the table.
func NewSchemaError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

// NewTypeError reports a column that was expected to be numeric but is not.
func NewTypeError(column string) error {
	return fmt.Errorf("%w: %q", ErrNotNumeric, column)
}

// Error checking helpers
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrColumnNotFound) || errors.Is(err, ErrEmptyColumnSet)
}

func IsTypeError(err error) bool {
	return errors.Is(err, ErrNotNumeric)
}
