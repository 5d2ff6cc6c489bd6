package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Test with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStore      = errors.New("store failure")
)

// ValidationError reports user-correctable intake problems.
type ValidationError struct {
	Message string
	Fields  []string
}

// NewValidationError returns a ValidationError naming the offending fields.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrValidation) true for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TransitionError describes a failed move of a single record.
type TransitionError struct {
	Kind  error
	Op    string
	ID    int64
	State string
	Err   error
}

func (e *TransitionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d: %v", e.Op, e.ID, e.Kind)
	if e.State != "" {
		fmt.Fprintf(&b, " (current state: %s)", e.State)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TransitionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound reports that id was no longer present when op ran.
func NotFound(op string, id int64) error {
	return &TransitionError{Kind: ErrNotFound, Op: op, ID: id}
}

// Conflict reports that id is in the wrong state for op.
func Conflict(op string, id int64, state string) error {
	return &TransitionError{Kind: ErrConflict, Op: op, ID: id, State: state}
}

// StoreFailure wraps an error from the backing store.
func StoreFailure(op string, id int64, err error) error {
	return &TransitionError{Kind: ErrStore, Op: op, ID: id, Err: err}
}

// StateOf returns the current state carried by a Conflict error, if any.
func StateOf(err error) string {
	var te *TransitionError
	if errors.As(err, &te) {
		return te.State
	}
	return ""
}
