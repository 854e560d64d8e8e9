package checkout

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/realyassine/SouqFX/domain/order"
	"github.com/realyassine/SouqFX/domain/shared"
	"github.com/realyassine/SouqFX/infrastructure/processing"
	"github.com/realyassine/SouqFX/pkg/logger"
)

// Stage is the lifecycle position of a tracked order.
type Stage string

const (
	StageQueued     Stage = "QUEUED"
	StageStarted    Stage = "STARTED"
	StageProcessing Stage = "PROCESSING"
	StageCompleted  Stage = "COMPLETED"
)

// appendTimeout bounds the ledger write on completion.
const appendTimeout = 10 * time.Second

// OrderStatus is a point-in-time view of a tracked order.
type OrderStatus struct {
	OrderID   int64
	Customer  string
	Stage     Stage
	Progress  int
	Success   bool
	Message   string
	Total     shared.Money
	UpdatedAt time.Time
}

type trackedOrder struct {
	order  *order.Order
	status OrderStatus
}

// StatusTracker follows orders through the processor. It implements
// processing.Observer: completions publish the order's pending domain
// events and append the order to the ledger.
type StatusTracker struct {
	repo      order.Repository
	publisher shared.DomainEventPublisher

	mu     sync.RWMutex
	orders map[int64]*trackedOrder
}

// NewStatusTracker creates the tracker.
func NewStatusTracker(repo order.Repository, publisher shared.DomainEventPublisher) (*StatusTracker, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("event publisher is required")
	}

	return &StatusTracker{
		repo:      repo,
		publisher: publisher,
		orders:    make(map[int64]*trackedOrder),
	}, nil
}

// Track registers an order before submission and publishes the events
// recorded at placement.
func (t *StatusTracker) Track(o *order.Order) {
	if o == nil {
		return
	}

	t.mu.Lock()
	t.orders[o.ID()] = &trackedOrder{
		order: o,
		status: OrderStatus{
			OrderID:   o.ID(),
			Customer:  o.CustomerName(),
			Stage:     StageQueued,
			Total:     o.Total(),
			UpdatedAt: time.Now(),
		},
	}
	t.mu.Unlock()

	t.publishPending(o)
}

// Discard drops a tracked order that never reached a worker.
func (t *StatusTracker) Discard(orderID int64) {
	t.mu.Lock()
	delete(t.orders, orderID)
	t.mu.Unlock()
}

// OnStarted implements processing.Observer.
func (t *StatusTracker) OnStarted(orderID int64) {
	t.update(orderID, func(st *OrderStatus) {
		st.Stage = StageStarted
	})
}

// OnProgress implements processing.Observer.
func (t *StatusTracker) OnProgress(orderID int64, percent int) {
	t.update(orderID, func(st *OrderStatus) {
		st.Stage = StageProcessing
		st.Progress = percent
	})

	logger.Debug("order progress",
		zap.Int64("order_id", orderID),
		zap.Int("percent", percent))
}

// OnCompleted implements processing.Observer. It records the outcome,
// publishes the order's pending events and, when processing succeeded,
// appends the order to the ledger. The ledger write is best effort; the
// store logs and counts failures.
func (t *StatusTracker) OnCompleted(orderID int64, success bool, message string) {
	t.update(orderID, func(st *OrderStatus) {
		st.Stage = StageCompleted
		st.Success = success
		st.Message = message
	})

	t.mu.RLock()
	tracked, ok := t.orders[orderID]
	t.mu.RUnlock()
	if !ok {
		logger.Warn("completion for unknown order", zap.Int64("order_id", orderID))
		return
	}

	o := tracked.order
	logger.Info("order completed",
		zap.Int64("order_id", orderID),
		zap.Bool("success", success),
		zap.String("message", message),
		zap.String("total", o.Total().String()))

	t.publishPending(o)

	if !success {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	_ = t.repo.Append(ctx, o)
}

func (t *StatusTracker) publishPending(o *order.Order) {
	for _, event := range o.PullEvents() {
		if err := t.publisher.Publish(event); err != nil {
			logger.Warn("could not publish order event",
				zap.Int64("order_id", o.ID()),
				zap.String("event", event.EventName()),
				zap.Error(err))
		}
	}
}

func (t *StatusTracker) update(orderID int64, fn func(*OrderStatus)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tracked, ok := t.orders[orderID]
	if !ok {
		return
	}
	fn(&tracked.status)
	tracked.status.UpdatedAt = time.Now()
}

// Status returns the tracked status of one order.
func (t *StatusTracker) Status(orderID int64) (OrderStatus, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tracked, ok := t.orders[orderID]
	if !ok {
		return OrderStatus{}, order.NewOrderNotFoundError(orderID)
	}
	return tracked.status, nil
}

// Order returns the tracked aggregate, used for receipts.
func (t *StatusTracker) Order(orderID int64) (*order.Order, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tracked, ok := t.orders[orderID]
	if !ok {
		return nil, order.NewOrderNotFoundError(orderID)
	}
	return tracked.order, nil
}

// Live returns all tracked orders, oldest first.
func (t *StatusTracker) Live() []OrderStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	statuses := make([]OrderStatus, 0, len(t.orders))
	for _, tracked := range t.orders {
		statuses = append(statuses, tracked.status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].OrderID < statuses[j].OrderID })
	return statuses
}

var _ processing.Observer = (*StatusTracker)(nil)
