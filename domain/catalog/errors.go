/*
Package catalog models the product catalog: items, their two variants
(electronics and clothing) and the specifications used to filter them.

Error design follows the domain convention: sentinel errors for
errors.Is() checks, constructors that capture the stack at creation.
*/
package catalog

import (
	"errors"
	"fmt"

	"github.com/realyassine/SouqFX/domain/shared"
)

var (
	// ErrItemNotFound no item carries the requested ID.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItemID item IDs are positive integers.
	ErrInvalidItemID = errors.New("item id must be positive")

	// ErrEmptyItemName every item needs a display name.
	ErrEmptyItemName = errors.New("item name is required")

	// ErrNegativePrice prices may be zero but never negative.
	ErrNegativePrice = errors.New("item price must not be negative")

	// ErrNegativeWarranty warranty is expressed in whole months, zero or more.
	ErrNegativeWarranty = errors.New("warranty months must not be negative")

	// ErrUnknownKind the item kind is neither electronics nor clothing.
	ErrUnknownKind = errors.New("unknown catalog item kind")
)

// NewItemNotFoundError creates an "item not found" error with stack.
func NewItemNotFoundError(id int) error {
	return &catalogDomainError{
		sentinel: ErrItemNotFound,
		entity:   "item",
		message:  fmt.Sprintf("item not found: %d", id),
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidItemIDError creates an invalid ID validation error.
func NewInvalidItemIDError(id int) error {
	return &catalogDomainError{
		sentinel: ErrInvalidItemID,
		entity:   "item",
		field:    "id",
		message:  fmt.Sprintf("item id must be positive, got %d", id),
		stack:    shared.CaptureStack(3),
	}
}

// NewEmptyItemNameError creates a missing name validation error.
func NewEmptyItemNameError() error {
	return &catalogDomainError{
		sentinel: ErrEmptyItemName,
		entity:   "item",
		field:    "name",
		message:  "item name is required",
		stack:    shared.CaptureStack(3),
	}
}

// NewNegativePriceError creates a negative price validation error.
func NewNegativePriceError(name string) error {
	return &catalogDomainError{
		sentinel: ErrNegativePrice,
		entity:   "item",
		field:    "unit_price",
		message:  "item price must not be negative: " + name,
		stack:    shared.CaptureStack(3),
	}
}

// NewNegativeWarrantyError creates a negative warranty validation error.
func NewNegativeWarrantyError(name string) error {
	return &catalogDomainError{
		sentinel: ErrNegativeWarranty,
		entity:   "item",
		field:    "warranty_months",
		message:  "warranty months must not be negative: " + name,
		stack:    shared.CaptureStack(3),
	}
}

// NewUnknownKindError creates an unknown kind error.
func NewUnknownKindError(kind string) error {
	return &catalogDomainError{
		sentinel: ErrUnknownKind,
		entity:   "item",
		field:    "kind",
		message:  "unknown catalog item kind: " + kind,
		stack:    shared.CaptureStack(3),
	}
}

// catalogDomainError implements error, Unwrap and shared.Stacker.
type catalogDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *catalogDomainError) Error() string {
	return e.message
}

func (e *catalogDomainError) Unwrap() error {
	return e.sentinel
}

func (e *catalogDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}

	return shared.FormatStack(e.stack)
}
