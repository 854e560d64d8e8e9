package catalog

import "context"

// Repository abstracts where catalog items are kept between runs.
// The flat-file store implements it; the application layer owns the
// in-memory working copy and decides when to load and save.
type Repository interface {
	// Load reads every persisted item. A missing backing file is not
	// an error; it yields an empty catalog.
	Load(ctx context.Context) ([]Item, error)

	// Save writes the full catalog, replacing what was stored before.
	Save(ctx context.Context, items []Item) error
}
