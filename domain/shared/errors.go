/*
Package shared holds the building blocks common to every domain package:
sentinel errors, the stack-carrying DomainError, money, and the domain
event contracts.

Error design:
 1. Sentinel errors support errors.Is() checks without string matching.
 2. DomainError captures its stack at creation and formats it lazily.
 3. Domain errors carry no transport concepts; HTTP mapping lives in
    the API layer.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound marks a lookup that matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a state collision, such as a duplicate identifier.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput marks failed argument validation.
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError is a structured error carrying business context and the
// stack of its creation point.
type DomainError struct {
	// Err is the underlying sentinel, for errors.Is() checks.
	Err error

	// Entity names the aggregate the error belongs to ("item", "order").
	Entity string

	// Message is the human readable description.
	Message string

	// Field optionally names the offending field for validation errors.
	Field string

	// stack holds raw frames captured at creation, formatted on demand.
	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames, one string per call frame.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack records the current call stack. skip counts the frames
// to drop, usually 3: Callers, CaptureStack and the error constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders raw frames as "file:line func" strings, skipping
// runtime internals and keeping at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError creates a "not found" domain error for an entity.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a validation domain error for one field.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that can report the stack of their
// creation point. The API layer uses it when logging failures.
type Stacker interface {
	Stack() []string
}
