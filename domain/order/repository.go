package order

import "context"

// Repository abstracts the persisted order ledger. Orders are only
// ever appended, after processing completes; history reads back what
// previous runs recorded.
type Repository interface {
	// Append adds one processed order to the ledger.
	Append(ctx context.Context, o *Order) error

	// History returns every persisted order record, oldest first.
	History(ctx context.Context) ([]Record, error)
}
