// Package csvstore persists the catalog and the order ledger as CSV
// flat files. Products are rewritten as a whole; orders are an
// append-only ledger. Write failures are retried, then surfaced
// through a log entry and a persistence_failures metric.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/realyassine/SouqFX/config"
	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/domain/order"
	"github.com/realyassine/SouqFX/infrastructure/persistence"
	"github.com/realyassine/SouqFX/infrastructure/persistence/retry"
	"github.com/realyassine/SouqFX/pkg/logger"
	"github.com/realyassine/SouqFX/pkg/metrics"
)

// opLogger tags store log entries with the request ID when the context
// carries one, so persistence failures can be traced back to a request.
func opLogger(ctx context.Context) *zap.Logger {
	if reqID := persistence.RequestIDFromContext(ctx); reqID != "" {
		return logger.WithRequestID(reqID)
	}
	return logger.With()
}

// Store reads and writes the two flat files under a single directory.
// A mutex serialises file access so concurrent checkouts cannot
// interleave ledger rows.
type Store struct {
	dir          string
	productsPath string
	ordersPath   string
	retryCfg     retry.Config

	mu sync.Mutex
}

// New creates a Store rooted at cfg.Dir, creating the directory when missing.
func New(cfg config.StoreConfig) (*Store, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("store dir is required")
	}
	if strings.TrimSpace(cfg.ProductsFile) == "" {
		return nil, fmt.Errorf("products file name is required")
	}
	if strings.TrimSpace(cfg.OrdersFile) == "" {
		return nil, fmt.Errorf("orders file name is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", cfg.Dir, err)
	}

	return &Store{
		dir:          cfg.Dir,
		productsPath: filepath.Join(cfg.Dir, cfg.ProductsFile),
		ordersPath:   filepath.Join(cfg.Dir, cfg.OrdersFile),
		retryCfg:     retry.FromStoreConfig(cfg.Retry),
	}, nil
}

// ProductsPath returns the absolute or relative path of the catalog file.
func (s *Store) ProductsPath() string { return s.productsPath }

// OrdersPath returns the path of the order ledger file.
func (s *Store) OrdersPath() string { return s.ordersPath }

// Load reads the full catalog. A missing file is not an error: the
// store starts empty on first run.
func (s *Store) Load(ctx context.Context) ([]catalog.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []catalog.Item
	err := retry.ExecuteWithRetry(ctx, s.retryCfg, func(ctx context.Context) error {
		loaded, err := s.readProducts()
		if err != nil {
			return err
		}
		items = loaded
		return nil
	})
	if err != nil {
		metrics.PersistenceFailure("load_catalog")
		opLogger(ctx).Error("failed to load catalog",
			zap.String("path", s.productsPath),
			zap.Error(err))
		return nil, err
	}

	return items, nil
}

// Save rewrites the whole catalog file, header included.
func (s *Store) Save(ctx context.Context, items []catalog.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := retry.ExecuteWithRetry(ctx, s.retryCfg, func(ctx context.Context) error {
		return s.writeProducts(items)
	})
	if err != nil {
		metrics.PersistenceFailure("save_catalog")
		opLogger(ctx).Error("failed to save catalog",
			zap.String("path", s.productsPath),
			zap.Int("items", len(items)),
			zap.Error(err))
		return err
	}

	logger.Debug("catalog saved",
		zap.String("path", s.productsPath),
		zap.Int("items", len(items)))
	return nil
}

// Append adds one order to the ledger, writing the header first when
// the file does not exist yet. Callers treat failures as best effort;
// the store reports them via log and metric before returning.
func (s *Store) Append(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is required")
	}
	rec := orderRecordFromDomain(order.RecordOf(o))

	s.mu.Lock()
	defer s.mu.Unlock()

	err := retry.ExecuteWithRetry(ctx, s.retryCfg, func(ctx context.Context) error {
		return s.appendOrder(rec)
	})
	if err != nil {
		metrics.PersistenceFailure("append_order")
		opLogger(ctx).Warn("failed to append order to ledger",
			zap.Int64("order_id", o.ID()),
			zap.String("path", s.ordersPath),
			zap.Error(err))
		return err
	}

	logger.Debug("order appended to ledger",
		zap.Int64("order_id", o.ID()),
		zap.String("path", s.ordersPath))
	return nil
}

// History reads the whole ledger. A missing file yields an empty history.
func (s *Store) History(ctx context.Context) ([]order.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []order.Record
	err := retry.ExecuteWithRetry(ctx, s.retryCfg, func(ctx context.Context) error {
		loaded, err := s.readOrders()
		if err != nil {
			return err
		}
		records = loaded
		return nil
	})
	if err != nil {
		metrics.PersistenceFailure("load_history")
		opLogger(ctx).Error("failed to load order history",
			zap.String("path", s.ordersPath),
			zap.Error(err))
		return nil, err
	}

	return records, nil
}

// Ping verifies the store directory exists and is writable.
func (s *Store) Ping() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store dir unavailable: %w", err)
	}
	probe, err := os.CreateTemp(s.dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("store dir not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

func (s *Store) readProducts() ([]catalog.Item, error) {
	rows, err := readRows(s.productsPath)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		logger.Info("catalog file not found, starting empty",
			zap.String("path", s.productsPath))
		return []catalog.Item{}, nil
	}

	items := make([]catalog.Item, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row, productHeader) {
			continue
		}
		rec, err := productRecordFromRow(row)
		if err != nil {
			logger.Warn("skipping malformed product row",
				zap.String("path", s.productsPath),
				zap.Int("line", i+1),
				zap.Error(err))
			continue
		}
		item, err := rec.toItem()
		if err != nil {
			logger.Warn("skipping invalid product row",
				zap.String("path", s.productsPath),
				zap.Int("line", i+1),
				zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Store) writeProducts(items []catalog.Item) (err error) {
	// Rows go to a temp file that is renamed over the catalog, so a
	// failed write never truncates the existing file.
	tmp, err := os.CreateTemp(s.dir, "products-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(productHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, item := range items {
		if err = w.Write(productRecordFromItem(item).fields()); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.productsPath); err != nil {
		return fmt.Errorf("replace %s: %w", s.productsPath, err)
	}
	return nil
}

func (s *Store) appendOrder(rec orderRecord) error {
	f, err := os.OpenFile(s.ordersPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.ordersPath, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat %s: %w", s.ordersPath, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(orderHeader); err != nil {
			f.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(rec.fields()); err != nil {
		f.Close()
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush row: %w", err)
	}
	return f.Close()
}

func (s *Store) readOrders() ([]order.Record, error) {
	rows, err := readRows(s.ordersPath)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		logger.Info("ledger file not found, starting empty",
			zap.String("path", s.ordersPath))
		return []order.Record{}, nil
	}

	records := make([]order.Record, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row, orderHeader) {
			continue
		}
		rec, err := orderRecordFromRow(row)
		if err != nil {
			logger.Warn("skipping malformed ledger row",
				zap.String("path", s.ordersPath),
				zap.Int("line", i+1),
				zap.Error(err))
			continue
		}
		domainRec, err := rec.toDomain()
		if err != nil {
			logger.Warn("skipping invalid ledger row",
				zap.String("path", s.ordersPath),
				zap.Int("line", i+1),
				zap.Error(err))
			continue
		}
		records = append(records, domainRec)
	}
	return records, nil
}

// readRows returns nil rows with a nil error when the file is missing.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}

func isHeader(row, header []string) bool {
	if len(row) != len(header) {
		return false
	}
	for i := range header {
		if !strings.EqualFold(strings.TrimSpace(row[i]), header[i]) {
			return false
		}
	}
	return true
}

var (
	_ catalog.Repository = (*Store)(nil)
	_ order.Repository   = (*Store)(nil)
)
