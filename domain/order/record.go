package order

import (
	"time"

	"github.com/realyassine/SouqFX/domain/shared"
)

// Record is the persisted read model of an order: the fields the store
// keeps between runs. Item snapshots are not persisted, so history is
// served from records rather than rebuilt aggregates.
type Record struct {
	ID           int64
	CustomerName string
	PlacedAt     time.Time
	Total        shared.Money
	Paid         bool
}

// RecordOf captures the persistable view of an order.
func RecordOf(o *Order) Record {
	return Record{
		ID:           o.ID(),
		CustomerName: o.CustomerName(),
		PlacedAt:     o.PlacedAt(),
		Total:        o.Total(),
		Paid:         o.Paid(),
	}
}
