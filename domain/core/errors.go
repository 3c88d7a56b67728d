package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrStudentNotFound   = fmt.Errorf("%w: student", ErrNotFound)
	ErrCompanyNotFound   = fmt.Errorf("%w: company", ErrNotFound)
	ErrPlacementNotFound = fmt.Errorf("%w: placement", ErrNotFound)

	// Conflict errors
	ErrConflict           = errors.New("resource already exists")
	ErrDuplicateStudent   = fmt.Errorf("%w: student with this email or roll number", ErrConflict)
	ErrDuplicateCompany   = fmt.Errorf("%w: company with this name", ErrConflict)
	ErrDuplicatePlacement = fmt.Errorf("%w: placement for this student and company", ErrConflict)

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
