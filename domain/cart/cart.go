/*
Package cart models the shopping cart: one mutable aggregate holding
quantity lines keyed by catalog item ID.

The cart is shared between the interactive surface and background
reads, so every operation takes the cart's lock. Mutations follow the
store's rules: adding an item already in the cart raises its quantity,
decreasing a quantity of one removes the line, and operations on
absent items are no-ops.
*/
package cart

import (
	"sort"
	"sync"

	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/domain/shared"

	"github.com/shopspring/decimal"
)

// Line is one cart entry: an item and how many units of it.
type Line struct {
	Item     catalog.Item
	Quantity int
}

// Total returns the line's price, unit price times quantity.
func (l Line) Total() shared.Money {
	return l.Item.UnitPrice().MulInt(l.Quantity)
}

// Cart holds the lines of one shopping session.
type Cart struct {
	mu    sync.RWMutex
	lines map[int]Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{
		lines: make(map[int]Line),
	}
}

// AddItem puts one unit of the item in the cart, raising the quantity
// when the item is already present.
func (c *Cart) AddItem(item catalog.Item) {
	if item.IsZero() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[item.ID()]
	if !ok {
		c.lines[item.ID()] = Line{Item: item, Quantity: 1}
		return
	}
	line.Quantity++
	c.lines[item.ID()] = line
}

// RemoveItem drops the whole line for an item, no-op when absent.
func (c *Cart) RemoveItem(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lines, id)
}

// DecreaseQuantity removes one unit of the item. A quantity of one
// removes the line; an absent item is a no-op.
func (c *Cart) DecreaseQuantity(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[id]
	if !ok {
		return
	}
	if line.Quantity <= 1 {
		delete(c.lines, id)
		return
	}
	line.Quantity--
	c.lines[id] = line
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[int]Line)
}

// Quantity returns how many units of an item the cart holds, zero
// when absent.
func (c *Cart) Quantity(id int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lines[id].Quantity
}

// TotalItemCount returns the unit count across all lines.
func (c *Cart) TotalItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines) == 0
}

// Total sums unit price times quantity over all lines. The store
// quotes every price in one currency.
func (c *Cart) Total() shared.Money {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Item.UnitPrice().Amount().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return shared.NewMoney(total, shared.DefaultCurrency)
}

// Lines returns a copy of the cart lines ordered by item ID.
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lines := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(a, b int) bool {
		return lines[a].Item.ID() < lines[b].Item.ID()
	})
	return lines
}

// Matching returns the distinct items satisfying a specification,
// ordered by item ID.
func (c *Cart) Matching(spec shared.Specification[catalog.Item]) []catalog.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var items []catalog.Item
	for _, line := range c.lines {
		if spec == nil || spec.IsSatisfiedBy(line.Item) {
			items = append(items, line.Item)
		}
	}
	sort.Slice(items, func(a, b int) bool {
		return items[a].ID() < items[b].ID()
	})
	return items
}

// ItemsOfKind returns the distinct items of one variant.
func (c *Cart) ItemsOfKind(kind catalog.Kind) []catalog.Item {
	return c.Matching(catalog.NewByKindSpecification(kind))
}

// Search returns the distinct items whose name contains the term,
// case-insensitively.
func (c *Cart) Search(term string) []catalog.Item {
	return c.Matching(catalog.NewNameContainsSpecification(term))
}

// ItemsInPriceRange returns the distinct items priced within the
// inclusive range.
func (c *Cart) ItemsInPriceRange(min, max shared.Money) []catalog.Item {
	return c.Matching(catalog.NewPriceBetweenSpecification(min, max))
}
