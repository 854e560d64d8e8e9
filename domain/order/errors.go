package order

import (
	"errors"
	"strconv"

	"github.com/realyassine/SouqFX/domain/shared"
)

var (
	// ErrOrderNotFound no order carries the requested number.
	ErrOrderNotFound = errors.New("order not found")
)

// NewOrderNotFoundError creates an "order not found" error with stack.
func NewOrderNotFoundError(orderID int64) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		entity:   "order",
		message:  "order not found: " + strconv.FormatInt(orderID, 10),
		stack:    shared.CaptureStack(3),
	}
}

// orderDomainError implements error, Unwrap and shared.Stacker.
type orderDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.sentinel
}

func (e *orderDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}

	return shared.FormatStack(e.stack)
}
