package wallet

import (
	"errors"
	"fmt"
)

// Sentinel errors that can be checked with errors.Is().
var (
	// ErrNotFound is returned when a secret or category is absent or is
	// owned by a different identity. The two cases are deliberately
	// indistinguishable so existence never leaks across ownership
	// boundaries.
	ErrNotFound = errors.New("record not found")

	// ErrCategoryNotFound is returned when a supplied category reference
	// does not resolve to a category owned by the caller.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCiphertext is returned when a sealed payload fails
	// authentication on open: corrupted, truncated, tampered with, or
	// sealed under a different key.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")

	// ErrInvalidKey is returned when the configured key material cannot be
	// turned into a usable encryption key. Fatal at startup.
	ErrInvalidKey = errors.New("invalid encryption key material")

	// ErrValidation is the sentinel matched by every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports an input that violates a field constraint.
// Validation always runs before any persistence attempt, so a validation
// failure never leaves partial state behind.
type ValidationError struct {
	// Field is the offending input field ("label", "name", "email").
	Field string

	// Reason describes the violated constraint.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed [field=%s]: %s", e.Field, e.Reason)
}

// Is implements error matching for errors.Is().
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError represents a failure of the underlying persistence layer.
// The wrapped cause is logged internally; callers see only the operation
// name and may treat the failure as retryable.
type StorageError struct {
	// Operation is the store operation that failed ("create_secret",
	// "delete_category", ...).
	Operation string

	// Cause is the underlying database error.
	Cause error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [operation=%s]: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{Operation: operation, Cause: cause}
}
