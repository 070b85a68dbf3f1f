package resource

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a missing, empty or malformed field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// FormatError reports a date field that is not ISO-8601.
type FormatError struct {
	Field string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid %s format. Please use ISO format.", e.Field)
}

// ConflictError reports a uniqueness violation or a write that lost a race.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError names the entity that could not be found.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConstraintKind classifies a constraint failure reported by the database.
type ConstraintKind int

const (
	ConstraintUnique ConstraintKind = iota + 1
	ConstraintForeignKey
	ConstraintWriteConflict
)

// ConstraintError is a driver error the persistence layer recognised.
// Column is empty when the driver does not say which column failed.
type ConstraintError struct {
	Kind   ConstraintKind
	Column string
	Err    error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint violation: %v", e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err is one the caller can fix by
// resubmitting, as opposed to an unexpected failure.
func IsClientError(err error) bool {
	var (
		ve *ValidationError
		fe *FormatError
		ce *ConflictError
	)
	return errors.As(err, &ve) || errors.As(err, &fe) || errors.As(err, &ce) || errors.Is(err, ErrNotFound)
}
