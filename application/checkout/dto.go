package checkout

import (
	"time"

	"github.com/realyassine/SouqFX/domain/cart"
	"github.com/realyassine/SouqFX/domain/order"
)

// AddItemRequest adds units of a catalog item to the cart. A missing
// quantity means one unit.
type AddItemRequest struct {
	ItemID   int `json:"item_id" binding:"required"`
	Quantity int `json:"quantity" binding:"omitempty,min=1"`
}

// CheckoutRequest carries the optional customer name.
type CheckoutRequest struct {
	CustomerName string `json:"customer_name"`
}

// CartLineView is one distinct item in the cart.
type CartLineView struct {
	ItemID    int    `json:"item_id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
	Display   string `json:"display"`
}

// CartView is the full cart read model.
type CartView struct {
	Lines      []CartLineView `json:"lines"`
	TotalItems int            `json:"total_items"`
	Total      string         `json:"total"`
	Currency   string         `json:"currency"`
	Empty      bool           `json:"empty"`
}

// CheckoutResponse acknowledges a queued order.
type CheckoutResponse struct {
	OrderID  int64  `json:"order_id"`
	Customer string `json:"customer"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// ExpressCheckoutResponse carries the settled outcome of an express
// checkout.
type ExpressCheckoutResponse struct {
	OrderID  int64  `json:"order_id"`
	Message  string `json:"message"`
	Paid     bool   `json:"paid"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// OrderStatusView is the tracked processing state of an order.
type OrderStatusView struct {
	OrderID   int64     `json:"order_id"`
	Customer  string    `json:"customer"`
	Stage     string    `json:"stage"`
	Progress  int       `json:"progress"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Total     string    `json:"total"`
	Currency  string    `json:"currency"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReceiptView wraps the printable payment summary.
type ReceiptView struct {
	OrderID int64  `json:"order_id"`
	Paid    bool   `json:"paid"`
	Text    string `json:"text"`
}

// HistoryEntryView is one row of the persisted order ledger.
type HistoryEntryView struct {
	OrderID  int64     `json:"order_id"`
	Customer string    `json:"customer"`
	PlacedAt time.Time `json:"placed_at"`
	Total    string    `json:"total"`
	Paid     bool      `json:"paid"`
}

func cartViewOf(c *cart.Cart) CartView {
	lines := c.Lines()
	views := make([]CartLineView, len(lines))
	for i, line := range lines {
		views[i] = CartLineView{
			ItemID:    line.Item.ID(),
			Name:      line.Item.Name(),
			Kind:      string(line.Item.Kind()),
			UnitPrice: line.Item.UnitPrice().StringFixed(),
			Quantity:  line.Quantity,
			LineTotal: line.Total().StringFixed(),
			Display:   line.Item.String(),
		}
	}

	total := c.Total()
	return CartView{
		Lines:      views,
		TotalItems: c.TotalItemCount(),
		Total:      total.StringFixed(),
		Currency:   total.Currency(),
		Empty:      c.IsEmpty(),
	}
}

func statusViewOf(st OrderStatus) OrderStatusView {
	return OrderStatusView{
		OrderID:   st.OrderID,
		Customer:  st.Customer,
		Stage:     string(st.Stage),
		Progress:  st.Progress,
		Success:   st.Success,
		Message:   st.Message,
		Total:     st.Total.StringFixed(),
		Currency:  st.Total.Currency(),
		UpdatedAt: st.UpdatedAt,
	}
}

func historyViewOf(rec order.Record) HistoryEntryView {
	return HistoryEntryView{
		OrderID:  rec.ID,
		Customer: rec.CustomerName,
		PlacedAt: rec.PlacedAt,
		Total:    rec.Total.StringFixed(),
		Paid:     rec.Paid,
	}
}
