package catalog

import (
	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/domain/shared"
)

// Query carries the browse filters as they arrive from the transport
// layer. Empty fields mean no filter.
type Query struct {
	Search   string `form:"search"`
	Kind     string `form:"kind"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
}

// ItemView is the read model returned to the API layer.
type ItemView struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	Price          string `json:"price"`
	Currency       string `json:"currency"`
	Brand          string `json:"brand,omitempty"`
	WarrantyMonths int    `json:"warranty_months,omitempty"`
	Size           string `json:"size,omitempty"`
	Material       string `json:"material,omitempty"`
	Display        string `json:"display"`
	Description    string `json:"description"`
}

// ViewOf converts a catalog item to its read model.
func ViewOf(item catalog.Item) ItemView {
	view := ItemView{
		ID:          item.ID(),
		Name:        item.Name(),
		Kind:        string(item.Kind()),
		Price:       item.UnitPrice().StringFixed(),
		Currency:    item.UnitPrice().Currency(),
		Display:     item.String(),
		Description: item.Description(),
	}

	if e, ok := item.Electronics(); ok {
		view.Brand = e.Brand
		view.WarrantyMonths = e.WarrantyMonths
	}
	if c, ok := item.Clothing(); ok {
		view.Size = c.Size
		view.Material = c.Material
	}

	return view
}

// ViewsOf converts a slice of items, never returning nil.
func ViewsOf(items []catalog.Item) []ItemView {
	views := make([]ItemView, len(items))
	for i, item := range items {
		views[i] = ViewOf(item)
	}
	return views
}

// SpecFromQuery builds the composite specification for a query. It
// returns nil when the query has no filters. A price filter needs both
// bounds.
func SpecFromQuery(q Query) (shared.Specification[catalog.Item], error) {
	specs := make([]shared.Specification[catalog.Item], 0, 3)

	if q.Search != "" {
		specs = append(specs, catalog.NewNameContainsSpecification(q.Search))
	}

	if q.Kind != "" {
		kind, err := catalog.ParseKind(q.Kind)
		if err != nil {
			return nil, err
		}
		specs = append(specs, catalog.NewByKindSpecification(kind))
	}

	if q.MinPrice != "" || q.MaxPrice != "" {
		if q.MinPrice == "" || q.MaxPrice == "" {
			return nil, shared.NewValidationError("query", "price", "invalid price filter: both min_price and max_price are needed")
		}
		min, err := shared.NewMoneyFromString(q.MinPrice, shared.DefaultCurrency)
		if err != nil {
			return nil, shared.NewValidationError("query", "min_price", "min_price is invalid")
		}
		max, err := shared.NewMoneyFromString(q.MaxPrice, shared.DefaultCurrency)
		if err != nil {
			return nil, shared.NewValidationError("query", "max_price", "max_price is invalid")
		}
		if min.IsGreaterThan(max) {
			return nil, shared.NewValidationError("query", "price", "invalid price range: min_price exceeds max_price")
		}
		specs = append(specs, catalog.NewPriceBetweenSpecification(min, max))
	}

	if len(specs) == 0 {
		return nil, nil
	}

	combined := specs[0]
	for _, spec := range specs[1:] {
		combined = shared.And(combined, spec)
	}
	return combined, nil
}
