package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realyassine/SouqFX/config"
	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/domain/shared"
)

type fakeRepo struct {
	mu      sync.Mutex
	items   []catalog.Item
	saved   [][]catalog.Item
	loadErr error
	saveErr error
}

func (f *fakeRepo) Load(ctx context.Context) ([]catalog.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.items, nil
}

func (f *fakeRepo) Save(ctx context.Context, items []catalog.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, items)
	return nil
}

func warmService(t *testing.T, repo *fakeRepo, seed bool) *Service {
	t.Helper()
	svc, err := NewService(repo, config.CatalogConfig{SeedOnEmpty: seed})
	require.NoError(t, err)
	require.NoError(t, svc.Warmup(context.Background()))
	return svc
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, config.CatalogConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog repository is required")
}

func TestWarmupSeedsEmptyStore(t *testing.T) {
	repo := &fakeRepo{}
	svc := warmService(t, repo, true)

	assert.Equal(t, 10, svc.Count())
	require.Len(t, repo.saved, 1)
	assert.Len(t, repo.saved[0], 10)

	item, err := svc.Item(1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", item.Name())
	assert.Equal(t, catalog.KindElectronics, item.Kind())

	item, err = svc.Item(8)
	require.NoError(t, err)
	assert.Equal(t, "Babouche", item.Name())
	assert.Equal(t, catalog.KindClothing, item.Kind())
}

func TestWarmupKeepsExistingCatalog(t *testing.T) {
	existing, err := catalog.NewElectronics(99, "Camera", shared.MustMoney("3200.00"), "Canon", 12)
	require.NoError(t, err)

	repo := &fakeRepo{items: []catalog.Item{existing}}
	svc := warmService(t, repo, true)

	assert.Equal(t, 1, svc.Count())
	assert.Empty(t, repo.saved)
}

func TestWarmupWithSeedingDisabled(t *testing.T) {
	repo := &fakeRepo{}
	svc := warmService(t, repo, false)

	assert.Equal(t, 0, svc.Count())
	assert.Empty(t, repo.saved)
}

func TestWarmupPropagatesLoadError(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("disk gone")}
	svc, err := NewService(repo, config.CatalogConfig{SeedOnEmpty: true})
	require.NoError(t, err)

	err = svc.Warmup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestWarmupToleratesSaveError(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("read-only file system")}
	svc := warmService(t, repo, true)

	assert.Equal(t, 10, svc.Count())
}

func TestSaveWritesSnapshot(t *testing.T) {
	repo := &fakeRepo{}
	svc := warmService(t, repo, true)

	require.NoError(t, svc.Save(context.Background()))

	// One write from seeding, one from the explicit save.
	require.Len(t, repo.saved, 2)
	assert.Len(t, repo.saved[1], 10)
}

func TestSavePropagatesError(t *testing.T) {
	existing, err := catalog.NewElectronics(99, "Camera", shared.MustMoney("3200.00"), "Canon", 12)
	require.NoError(t, err)

	repo := &fakeRepo{items: []catalog.Item{existing}, saveErr: errors.New("read-only file system")}
	svc := warmService(t, repo, true)

	require.Error(t, svc.Save(context.Background()))
}

func TestListAll(t *testing.T) {
	svc := warmService(t, &fakeRepo{}, true)

	views, err := svc.List(Query{})
	require.NoError(t, err)
	require.Len(t, views, 10)

	assert.Equal(t, 1, views[0].ID)
	assert.Equal(t, "Laptop", views[0].Name)
	assert.Equal(t, "9999.00", views[0].Price)
	assert.Equal(t, "DH", views[0].Currency)
	assert.Equal(t, "Dell", views[0].Brand)
	assert.Equal(t, 24, views[0].WarrantyMonths)
	assert.Equal(t, 10, views[9].ID)
	assert.Equal(t, "Denim", views[9].Material)
}

func TestListBySearch(t *testing.T) {
	svc := warmService(t, &fakeRepo{}, true)

	views, err := svc.List(Query{Search: "phone"})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Smartphone", views[0].Name)
	assert.Equal(t, "Headphones", views[1].Name)
}

func TestListByKind(t *testing.T) {
	svc := warmService(t, &fakeRepo{}, true)

	views, err := svc.List(Query{Kind: "clothing"})
	require.NoError(t, err)
	require.Len(t, views, 5)
	for _, v := range views {
		assert.Equal(t, "CLOTHING", v.Kind)
	}
}

func TestListByPriceRange(t *testing.T) {
	svc := warmService(t, &fakeRepo{}, true)

	views, err := svc.List(Query{MinPrice: "100", MaxPrice: "500"})
	require.NoError(t, err)

	ids := make([]int, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	assert.Equal(t, []int{6, 8, 9, 10}, ids)
}

func TestListCombinedFilters(t *testing.T) {
	svc := warmService(t, &fakeRepo{}, true)

	views, err := svc.List(Query{Kind: "ELECTRONICS", MinPrice: "1000", MaxPrice: "5000", Search: "t"})
	require.NoError(t, err)

	// Tablet (4499) and Smart Watch (2999) match kind, range and "t".
	require.Len(t, views, 2)
	assert.Equal(t, "Tablet", views[0].Name)
	assert.Equal(t, "Smart Watch", views[1].Name)
}

func TestListRejectsBadQueries(t *testing.T) {
	svc := warmService(t, &fakeRepo{}, true)

	_, err := svc.List(Query{Kind: "FURNITURE"})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownKind)

	_, err = svc.List(Query{MinPrice: "100"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.List(Query{MinPrice: "abc", MaxPrice: "10"})
	require.Error(t, err)

	_, err = svc.List(Query{MinPrice: "500", MaxPrice: "100"})
	require.Error(t, err)
}

func TestGet(t *testing.T) {
	svc := warmService(t, &fakeRepo{}, true)

	view, err := svc.Get(7)
	require.NoError(t, err)
	assert.Equal(t, "Caftan", view.Name)
	assert.Equal(t, "M", view.Size)
	assert.Equal(t, "Silk", view.Material)
	assert.Contains(t, view.Display, "[Clothing] Caftan")

	_, err = svc.Get(404)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestItemsReturnsCopy(t *testing.T) {
	svc := warmService(t, &fakeRepo{}, true)

	items := svc.Items()
	require.Len(t, items, 10)

	items[0] = catalog.Item{}
	fresh, err := svc.Item(1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", fresh.Name())
}
