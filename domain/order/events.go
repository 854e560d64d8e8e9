package order

import (
	"strconv"
	"time"

	"github.com/realyassine/SouqFX/domain/shared"
)

// OrderPlacedEvent records that checkout created an order.
type OrderPlacedEvent struct {
	orderID      int64
	customerName string
	total        shared.Money
	itemCount    int
	occurredOn   time.Time
}

func NewOrderPlacedEvent(orderID int64, customerName string, total shared.Money, itemCount int) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:      orderID,
		customerName: customerName,
		total:        total,
		itemCount:    itemCount,
		occurredOn:   time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string      { return "order.placed" }
func (e *OrderPlacedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderPlacedEvent) GetAggregateID() string { return strconv.FormatInt(e.orderID, 10) }
func (e *OrderPlacedEvent) OrderID() int64         { return e.orderID }
func (e *OrderPlacedEvent) CustomerName() string   { return e.customerName }
func (e *OrderPlacedEvent) Total() shared.Money    { return e.total }
func (e *OrderPlacedEvent) ItemCount() int         { return e.itemCount }

// OrderPaidEvent records that payment completed for an order.
type OrderPaidEvent struct {
	orderID    int64
	total      shared.Money
	occurredOn time.Time
}

func NewOrderPaidEvent(orderID int64, total shared.Money) *OrderPaidEvent {
	return &OrderPaidEvent{
		orderID:    orderID,
		total:      total,
		occurredOn: time.Now(),
	}
}

func (e *OrderPaidEvent) EventName() string      { return "order.paid" }
func (e *OrderPaidEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderPaidEvent) GetAggregateID() string { return strconv.FormatInt(e.orderID, 10) }
func (e *OrderPaidEvent) OrderID() int64         { return e.orderID }
func (e *OrderPaidEvent) Total() shared.Money    { return e.total }
