// Package catalog wires the product catalog use cases: warmup from the
// store, filtered browsing and single item lookup.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/realyassine/SouqFX/config"
	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/pkg/logger"
)

// Service serves catalog reads from an in-memory snapshot loaded at
// warmup. The catalog does not change while the app runs, so reads
// never go back to the store.
type Service struct {
	repo        catalog.Repository
	seedOnEmpty bool

	mu    sync.RWMutex
	items []catalog.Item
	byID  map[int]catalog.Item
}

// NewService creates the catalog service.
func NewService(repo catalog.Repository, cfg config.CatalogConfig) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}

	return &Service{
		repo:        repo,
		seedOnEmpty: cfg.SeedOnEmpty,
		byID:        make(map[int]catalog.Item),
	}, nil
}

// Warmup loads the catalog from the store. When the store is empty and
// seeding is enabled, the sample catalog is installed and written back
// on a best effort basis.
func (s *Service) Warmup(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	seeded := false
	if len(items) == 0 && s.seedOnEmpty {
		items = sampleItems()
		seeded = true
		if err := s.repo.Save(ctx, items); err != nil {
			logger.Warn("could not persist seeded catalog", zap.Error(err))
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID() < items[j].ID() })

	byID := make(map[int]catalog.Item, len(items))
	for _, item := range items {
		byID[item.ID()] = item
	}

	s.mu.Lock()
	s.items = items
	s.byID = byID
	s.mu.Unlock()

	logger.Info("catalog ready",
		zap.Int("items", len(items)),
		zap.Bool("seeded", seeded))

	return nil
}

// List returns the items matching the query, in ID order.
func (s *Service) List(q Query) ([]ItemView, error) {
	spec, err := SpecFromQuery(q)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if spec == nil {
		return ViewsOf(s.items), nil
	}

	matched := make([]catalog.Item, 0, len(s.items))
	for _, item := range s.items {
		if spec.IsSatisfiedBy(item) {
			matched = append(matched, item)
		}
	}

	return ViewsOf(matched), nil
}

// Get returns the read model of one item.
func (s *Service) Get(id int) (ItemView, error) {
	item, err := s.Item(id)
	if err != nil {
		return ItemView{}, err
	}
	return ViewOf(item), nil
}

// Item returns the domain item for callers that need more than the
// read model. Checkout resolves cart additions through it.
func (s *Service) Item(id int) (catalog.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.byID[id]
	if !ok {
		return catalog.Item{}, catalog.NewItemNotFoundError(id)
	}
	return item, nil
}

// Save writes the snapshot back to the store. The app calls it once
// during shutdown so the flat file matches the catalog it served.
func (s *Service) Save(ctx context.Context) error {
	s.mu.RLock()
	items := make([]catalog.Item, len(s.items))
	copy(items, s.items)
	s.mu.RUnlock()

	return s.repo.Save(ctx, items)
}

// Count reports the snapshot size.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Items returns a copy of the full snapshot.
func (s *Service) Items() []catalog.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]catalog.Item, len(s.items))
	copy(items, s.items)
	return items
}
