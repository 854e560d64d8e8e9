// Package errors defines application level error codes and the AppError
// type the API layer maps onto HTTP responses. Domain errors stay plain
// and are translated here so lower layers never see HTTP concerns.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is a stable machine readable error identifier.
type ErrorCode string

const (
	// Generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeUnavailable    ErrorCode = "SERVICE_UNAVAILABLE"
	CodeTimeout        ErrorCode = "TIMEOUT"

	// Business codes
	CodeItemNotFound    ErrorCode = "ITEM_NOT_FOUND"
	CodeCartEmpty       ErrorCode = "CART_EMPTY"
	CodeOrderNotFound   ErrorCode = "ORDER_NOT_FOUND"
	CodeProcessorClosed ErrorCode = "PROCESSOR_CLOSED"
	CodeCheckoutTimeout ErrorCode = "CHECKOUT_TIMEOUT"
)

// AppError carries a code, a user visible message and an optional
// wrapped cause that is logged but never returned to clients.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without a cause.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common constructors

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func Unavailable(message string) *AppError {
	return New(CodeUnavailable, message)
}

func Timeout(message string) *AppError {
	return New(CodeTimeout, message)
}

// Business constructors

func ItemNotFound() *AppError {
	return New(CodeItemNotFound, "item not found")
}

func CartEmpty() *AppError {
	return New(CodeCartEmpty, "cart is empty")
}

func OrderNotFound() *AppError {
	return New(CodeOrderNotFound, "order not found")
}

func ProcessorClosed() *AppError {
	return New(CodeProcessorClosed, "order processor is shut down")
}

func CheckoutTimeout() *AppError {
	return New(CodeCheckoutTimeout, "timed out waiting for order confirmation")
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError converts any error to an AppError, wrapping unknown
// errors as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal server error")
}

// FromDomainError maps a domain error onto an application error.
// Domain errors identify themselves by message, not by HTTP concern,
// so the translation matches on the known message vocabulary first
// and falls back to keyword heuristics.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "item not found"):
		return ItemNotFound()
	case strings.Contains(msg, "cart is empty"):
		return CartEmpty()
	case strings.Contains(msg, "order not found"):
		return OrderNotFound()
	case strings.Contains(msg, "processor is shut down"):
		return ProcessorClosed()
	case strings.Contains(msg, "not found"):
		return NotFound(msg)
	case strings.Contains(msg, "invalid"),
		strings.Contains(msg, "unknown"),
		strings.Contains(msg, "must be"),
		strings.Contains(msg, "must not"),
		strings.Contains(msg, "is required"):
		return Validation(msg)
	case strings.Contains(msg, "already exists"):
		return Conflict(msg)
	default:
		return Wrap(err, CodeInternal, msg)
	}
}
