package cart

import (
	"errors"

	"github.com/realyassine/SouqFX/domain/shared"
)

var (
	// ErrEmptyCart checkout needs at least one item in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// NewEmptyCartError creates an empty cart error with stack.
func NewEmptyCartError() error {
	return &cartDomainError{
		sentinel: ErrEmptyCart,
		entity:   "cart",
		message:  "cart is empty",
		stack:    shared.CaptureStack(3),
	}
}

// cartDomainError implements error, Unwrap and shared.Stacker.
type cartDomainError struct {
	sentinel error
	entity   string
	message  string
	stack    []uintptr
}

func (e *cartDomainError) Error() string {
	return e.message
}

func (e *cartDomainError) Unwrap() error {
	return e.sentinel
}

func (e *cartDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}

	return shared.FormatStack(e.stack)
}
