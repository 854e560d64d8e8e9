package order

import "github.com/realyassine/SouqFX/domain/shared"

// Payable is the capability of anything that can be charged: it knows
// its total, can run payment and can print a settlement summary. Order
// is the only implementation today; the processor depends on the
// capability, not the aggregate.
type Payable interface {
	Total() shared.Money
	ProcessPayment() bool
	PaymentSummary() string
}
