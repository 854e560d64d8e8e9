/*
Package order holds the Order aggregate root, the heart of the
storefront's domain layer.

An order snapshots the purchased items at checkout, so later catalog
changes never alter what a customer agreed to pay. All fields are
private; state changes go through aggregate methods which record the
matching domain events. The total is always computed from the item
snapshot, never stored, so it cannot drift.
*/
package order

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/domain/shared"

	"github.com/shopspring/decimal"
)

// DefaultCustomerName stands in when checkout supplies no name.
const DefaultCustomerName = "Walk-in Customer"

// ReceiptDateLayout is the timestamp format printed on receipts.
const ReceiptDateLayout = "2006-01-02 15:04"

// orderIDBase seeds the sequence; the first order gets 1001.
const orderIDBase = 1000

var orderSeq atomic.Int64

func nextOrderID() int64 {
	return orderIDBase + orderSeq.Add(1)
}

// Order is the aggregate root for one purchase. It is created by
// checkout and then handed to the background processor, so the mutable
// payment state is guarded by a lock while the identity, timestamp and
// item snapshot stay immutable after construction.
type Order struct {
	id           int64
	customerName string
	placedAt     time.Time
	items        []catalog.Item

	mu     sync.Mutex
	paid   bool
	events []shared.DomainEvent
}

// New creates an order from the items it will contain. Quantity is
// expressed by repetition: two units of an item appear as two entries.
// A blank customer name falls back to DefaultCustomerName. An order
// may be created empty; paying for it will fail.
func New(customerName string, items []catalog.Item) *Order {
	name := strings.TrimSpace(customerName)
	if name == "" {
		name = DefaultCustomerName
	}

	snapshot := make([]catalog.Item, len(items))
	copy(snapshot, items)

	o := &Order{
		id:           nextOrderID(),
		customerName: name,
		placedAt:     time.Now(),
		items:        snapshot,
		events:       make([]shared.DomainEvent, 0, 2),
	}

	o.events = append(o.events, NewOrderPlacedEvent(o.id, o.customerName, o.total(), len(o.items)))

	return o
}

// ID returns the sequential order number.
func (o *Order) ID() int64 { return o.id }

// CustomerName returns the name recorded at checkout.
func (o *Order) CustomerName() string { return o.customerName }

// PlacedAt returns when the order was created.
func (o *Order) PlacedAt() time.Time { return o.placedAt }

// ItemCount returns the number of units in the order.
func (o *Order) ItemCount() int { return len(o.items) }

// Items returns a copy of the item snapshot.
func (o *Order) Items() []catalog.Item {
	items := make([]catalog.Item, len(o.items))
	copy(items, o.items)
	return items
}

// Paid reports whether payment has completed.
func (o *Order) Paid() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.paid
}

// Total computes the sum of the snapshot's unit prices.
func (o *Order) Total() shared.Money {
	return o.total()
}

// total is lock-free: the item snapshot never changes after New.
func (o *Order) total() shared.Money {
	sum := decimal.Zero
	for _, item := range o.items {
		sum = sum.Add(item.UnitPrice().Amount())
	}
	return shared.NewMoney(sum, shared.DefaultCurrency)
}

// ProcessPayment finalises payment. An empty order cannot be paid and
// returns false. Paying an already paid order is a no-op that reports
// success, so a repeated finalisation never corrupts state.
func (o *Order) ProcessPayment() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.items) == 0 {
		return false
	}
	if o.paid {
		return true
	}

	o.paid = true
	o.events = append(o.events, NewOrderPaidEvent(o.id, o.total()))
	return true
}

// PaymentSummary renders the bordered receipt for this order.
func (o *Order) PaymentSummary() string {
	o.mu.Lock()
	paid := o.paid
	o.mu.Unlock()

	var b strings.Builder
	b.WriteString("========== ORDER SUMMARY ==========\n")
	fmt.Fprintf(&b, "Order ID: %d\n", o.id)
	fmt.Fprintf(&b, "Customer: %s\n", o.customerName)
	fmt.Fprintf(&b, "Date: %s\n", o.placedAt.Format(ReceiptDateLayout))
	b.WriteString("-----------------------------------\n")
	b.WriteString("Items:\n")
	for _, item := range o.items {
		fmt.Fprintf(&b, "  - %s\n", item)
	}
	b.WriteString("-----------------------------------\n")
	fmt.Fprintf(&b, "Total: %s\n", o.total())
	fmt.Fprintf(&b, "Status: %s\n", statusLabel(paid))
	b.WriteString("===================================")
	return b.String()
}

// String renders the one-line form used in listings and logs.
func (o *Order) String() string {
	o.mu.Lock()
	paid := o.paid
	o.mu.Unlock()

	return fmt.Sprintf("Order #%d - %s - %s - %s", o.id, o.customerName, o.total(), statusLabel(paid))
}

func statusLabel(paid bool) string {
	if paid {
		return "PAID"
	}
	return "PENDING"
}

// PullEvents returns the recorded events and clears the buffer.
func (o *Order) PullEvents() []shared.DomainEvent {
	o.mu.Lock()
	defer o.mu.Unlock()

	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = o.events[:0]
	return events
}

// Compile-time interface checks.
var (
	_ shared.AggregateRoot = (*Order)(nil)
	_ Payable              = (*Order)(nil)
)
