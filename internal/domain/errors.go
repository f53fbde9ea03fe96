package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors forming the closed failure taxonomy. Every failure that
// leaves the service layer unwraps to exactly one of these.
var (
	// ErrNotFound indicates that no pokemon exists at the requested id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that a write payload failed field validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConstraintViolation indicates that the store rejected a write.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrConnection indicates that the store is unreachable.
	ErrConnection = errors.New("database connection error")

	// ErrPoolExhausted indicates that no connection lease (or worker slot)
	// became available within the configured timeout.
	ErrPoolExhausted = errors.New("pool exhausted")

	// ErrInternal indicates any other unclassified fault.
	ErrInternal = errors.New("internal error")
)

// FieldViolation records a single failed constraint on a payload field.
type FieldViolation struct {
	// Field is the JSON name of the offending field.
	Field string

	// Constraint is a human-readable description of the violated constraint.
	Constraint string
}

// String renders the violation as "field: constraint".
func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Constraint)
}

// ValidationErrors aggregates every field violation found in a payload so a
// caller can fix all of them in one round trip.
type ValidationErrors struct {
	Violations []FieldViolation
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Details())
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}

// Details renders the violations as a "field: constraint" list, suitable for
// the details field of an error response.
func (e *ValidationErrors) Details() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return strings.Join(msgs, "; ")
}

// NotFoundError provides details about a missing pokemon.
type NotFoundError struct {
	Entity string
	ID     int64
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConstraintViolationError provides details about a write the store rejected.
type ConstraintViolationError struct {
	Constraint string
	Cause      error
}

// Error implements the error interface.
func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint violation on %q", e.Constraint)
}

// Unwrap returns the driver error that caused the rejection, keeping the
// causal chain intact.
func (e *ConstraintViolationError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrConstraintViolation
}

// Is matches the constraint-violation sentinel, so errors.Is classifies the
// chain correctly even though Unwrap yields the driver cause.
func (e *ConstraintViolationError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// PanicError wraps a recovered panic from a dispatched store call.
// The stack is captured only when stack capture is enabled (Development).
type PanicError struct {
	Value any
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *PanicError) Unwrap() error {
	return ErrInternal
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewValidationErrors creates a ValidationErrors from a violation list.
func NewValidationErrors(violations ...FieldViolation) *ValidationErrors {
	return &ValidationErrors{Violations: violations}
}

// NewConstraintViolationError creates a ConstraintViolationError.
func NewConstraintViolationError(constraint string, cause error) *ConstraintViolationError {
	return &ConstraintViolationError{Constraint: constraint, Cause: cause}
}

// ErrorChain renders err and each of its causes, one "caused by:" line per
// link from the outermost error down to the root cause. A PanicError's
// captured stack is appended after the chain.
func ErrorChain(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(err.Error())

	var stack string
	for e := err; e != nil; e = errors.Unwrap(e) {
		if pe, ok := e.(*PanicError); ok && pe.Stack != "" {
			stack = pe.Stack
		}
		if e != err {
			b.WriteString("\ncaused by: ")
			b.WriteString(e.Error())
		}
	}

	if stack != "" {
		b.WriteString("\n")
		b.WriteString(stack)
	}
	return b.String()
}
