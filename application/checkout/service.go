// Package checkout orchestrates the shopping cart, order placement and
// the asynchronous order processor.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/realyassine/SouqFX/application/catalog"
	"github.com/realyassine/SouqFX/domain/cart"
	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/domain/order"
	"github.com/realyassine/SouqFX/infrastructure/processing"
	apperrors "github.com/realyassine/SouqFX/pkg/errors"
	"github.com/realyassine/SouqFX/pkg/logger"
	"github.com/realyassine/SouqFX/pkg/metrics"
)

// ItemSource resolves catalog items for cart additions.
type ItemSource interface {
	Item(id int) (catalog.Item, error)
}

// Service is the checkout application service.
type Service struct {
	cart         *cart.Cart
	items        ItemSource
	processor    *processing.Processor
	tracker      *StatusTracker
	history      order.Repository
	awaitTimeout time.Duration
}

// NewService creates the checkout service.
func NewService(
	c *cart.Cart,
	items ItemSource,
	processor *processing.Processor,
	tracker *StatusTracker,
	history order.Repository,
	awaitTimeout time.Duration,
) (*Service, error) {
	if c == nil {
		return nil, fmt.Errorf("cart is required")
	}
	if items == nil {
		return nil, fmt.Errorf("item source is required")
	}
	if processor == nil {
		return nil, fmt.Errorf("order processor is required")
	}
	if tracker == nil {
		return nil, fmt.Errorf("status tracker is required")
	}
	if history == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if awaitTimeout <= 0 {
		return nil, fmt.Errorf("await timeout must be positive")
	}

	return &Service{
		cart:         c,
		items:        items,
		processor:    processor,
		tracker:      tracker,
		history:      history,
		awaitTimeout: awaitTimeout,
	}, nil
}

// AddToCart resolves the item and adds the requested units, one by
// default.
func (s *Service) AddToCart(req AddItemRequest) (CartView, error) {
	item, err := s.items.Item(req.ItemID)
	if err != nil {
		return CartView{}, err
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	for i := 0; i < qty; i++ {
		s.cart.AddItem(item)
	}
	metrics.SetCartItems(s.cart.TotalItemCount())

	logger.Debug("item added to cart",
		zap.Int("item_id", item.ID()),
		zap.Int("quantity", qty))

	return cartViewOf(s.cart), nil
}

// RemoveFromCart drops the item entirely. Removing an absent item is a
// no-op.
func (s *Service) RemoveFromCart(itemID int) CartView {
	s.cart.RemoveItem(itemID)
	metrics.SetCartItems(s.cart.TotalItemCount())
	return cartViewOf(s.cart)
}

// DecreaseQuantity removes one unit, dropping the line at zero.
func (s *Service) DecreaseQuantity(itemID int) CartView {
	s.cart.DecreaseQuantity(itemID)
	metrics.SetCartItems(s.cart.TotalItemCount())
	return cartViewOf(s.cart)
}

// ClearCart empties the cart.
func (s *Service) ClearCart() CartView {
	s.cart.Clear()
	metrics.SetCartItems(0)
	return cartViewOf(s.cart)
}

// Cart returns the current cart view.
func (s *Service) Cart() CartView {
	return cartViewOf(s.cart)
}

// FilterCart returns the distinct cart items matching the query, with
// their quantities.
func (s *Service) FilterCart(q catalogapp.Query) ([]CartLineView, error) {
	spec, err := catalogapp.SpecFromQuery(q)
	if err != nil {
		return nil, err
	}

	items := s.cart.Matching(spec)
	views := make([]CartLineView, len(items))
	for i, item := range items {
		qty := s.cart.Quantity(item.ID())
		views[i] = CartLineView{
			ItemID:    item.ID(),
			Name:      item.Name(),
			Kind:      string(item.Kind()),
			UnitPrice: item.UnitPrice().StringFixed(),
			Quantity:  qty,
			LineTotal: item.UnitPrice().MulInt(qty).StringFixed(),
			Display:   item.String(),
		}
	}
	return views, nil
}

// Checkout places an order for the cart contents and queues it for
// background processing. The cart empties once the order is queued.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error) {
	if s.cart.IsEmpty() {
		return CheckoutResponse{}, cart.NewEmptyCartError()
	}

	o := order.New(req.CustomerName, s.snapshotCart())
	s.tracker.Track(o)

	if err := s.processor.Submit(ctx, o); err != nil {
		s.tracker.Discard(o.ID())
		return CheckoutResponse{}, err
	}

	s.cart.Clear()
	metrics.SetCartItems(0)

	logger.Info("order queued",
		zap.Int64("order_id", o.ID()),
		zap.String("customer", o.CustomerName()),
		zap.String("total", o.Total().String()))

	total := o.Total()
	return CheckoutResponse{
		OrderID:  o.ID(),
		Customer: o.CustomerName(),
		Total:    total.StringFixed(),
		Currency: total.Currency(),
		Status:   string(StageQueued),
	}, nil
}

// ExpressCheckout places the order and waits for the settled outcome
// within the configured timeout. On timeout the order is abandoned and
// dropped from tracking.
func (s *Service) ExpressCheckout(ctx context.Context, req CheckoutRequest) (ExpressCheckoutResponse, error) {
	if s.cart.IsEmpty() {
		return ExpressCheckoutResponse{}, cart.NewEmptyCartError()
	}

	o := order.New(req.CustomerName, s.snapshotCart())
	s.tracker.Track(o)

	res, err := s.processor.SubmitForResult(ctx, o)
	if err != nil {
		s.tracker.Discard(o.ID())
		return ExpressCheckoutResponse{}, err
	}

	s.cart.Clear()
	metrics.SetCartItems(0)

	awaitCtx, cancel := context.WithTimeout(ctx, s.awaitTimeout)
	defer cancel()

	msg, err := res.Await(awaitCtx)
	if err != nil {
		s.tracker.Discard(o.ID())
		logger.Warn("express checkout did not settle",
			zap.Int64("order_id", o.ID()),
			zap.Error(err))
		if errors.Is(err, processing.ErrResultTimeout) {
			return ExpressCheckoutResponse{}, apperrors.CheckoutTimeout()
		}
		return ExpressCheckoutResponse{}, err
	}

	s.tracker.OnCompleted(o.ID(), o.Paid(), msg)

	total := o.Total()
	return ExpressCheckoutResponse{
		OrderID:  o.ID(),
		Message:  msg,
		Paid:     o.Paid(),
		Total:    total.StringFixed(),
		Currency: total.Currency(),
	}, nil
}

// OrderStatus reports the tracked processing state of one order.
func (s *Service) OrderStatus(orderID int64) (OrderStatusView, error) {
	st, err := s.tracker.Status(orderID)
	if err != nil {
		return OrderStatusView{}, err
	}
	return statusViewOf(st), nil
}

// Receipt renders the printable payment summary of one order.
func (s *Service) Receipt(orderID int64) (ReceiptView, error) {
	o, err := s.tracker.Order(orderID)
	if err != nil {
		return ReceiptView{}, err
	}
	return ReceiptView{
		OrderID: o.ID(),
		Paid:    o.Paid(),
		Text:    o.PaymentSummary(),
	}, nil
}

// LiveOrders lists every order tracked since startup, oldest first.
func (s *Service) LiveOrders() []OrderStatusView {
	statuses := s.tracker.Live()
	views := make([]OrderStatusView, len(statuses))
	for i, st := range statuses {
		views[i] = statusViewOf(st)
	}
	return views
}

// History reads the persisted order ledger.
func (s *Service) History(ctx context.Context) ([]HistoryEntryView, error) {
	records, err := s.history.History(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	views := make([]HistoryEntryView, len(records))
	for i, rec := range records {
		views[i] = historyViewOf(rec)
	}
	return views, nil
}

// snapshotCart expands the cart lines into the per-unit item list the
// order snapshot holds.
func (s *Service) snapshotCart() []catalog.Item {
	lines := s.cart.Lines()
	items := make([]catalog.Item, 0, s.cart.TotalItemCount())
	for _, line := range lines {
		for i := 0; i < line.Quantity; i++ {
			items = append(items, line.Item)
		}
	}
	return items
}
