package shared

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency every price in the store is quoted in.
const DefaultCurrency = "DH"

// Money is an immutable amount of one currency. Arithmetic returns new
// values and keeps full decimal precision; rendering rounds to two
// places, the store's display convention.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money value. An empty currency falls back to
// DefaultCurrency.
func NewMoney(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{
		amount:   amount,
		currency: currency,
	}
}

// NewMoneyFromString parses a decimal literal such as "1299.00".
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d, currency), nil
}

// MustMoney parses a decimal literal in the default currency and panics
// on malformed input. Intended for seed data and test fixtures.
func MustMoney(amount string) Money {
	return NewMoney(decimal.RequireFromString(amount), DefaultCurrency)
}

// Zero is the zero amount in the default currency.
func Zero() Money {
	return Money{currency: DefaultCurrency}
}

// Amount returns the numeric value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errors.New("cannot add money with different currencies")
	}
	return Money{
		amount:   m.amount.Add(other.amount),
		currency: m.currency,
	}, nil
}

// Subtract subtracts an amount of the same currency.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errors.New("cannot subtract money with different currencies")
	}
	return Money{
		amount:   m.amount.Sub(other.amount),
		currency: m.currency,
	}, nil
}

// MulInt multiplies the amount by a whole quantity.
func (m Money) MulInt(n int) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(n))),
		currency: m.currency,
	}
}

// IsGreaterThan compares amounts.
func (m Money) IsGreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsGreaterThanOrEqual compares amounts.
func (m Money) IsGreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// IsLessThanOrEqual compares amounts.
func (m Money) IsLessThanOrEqual(other Money) bool {
	return m.amount.LessThanOrEqual(other.amount)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equals compares amount and currency.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount) && m.currency == other.currency
}

// StringFixed renders the amount alone with two decimal places.
func (m Money) StringFixed() string {
	return m.amount.StringFixed(2)
}

// String renders the amount with its currency, e.g. "1299.00 DH".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
