package catalog

import (
	"strings"

	"github.com/realyassine/SouqFX/domain/shared"
)

// NameContainsSpecification matches items whose name contains a term,
// case-insensitively. An empty term matches everything.
type NameContainsSpecification struct {
	Term string
}

func (spec NameContainsSpecification) IsSatisfiedBy(item Item) bool {
	if spec.Term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Name()), strings.ToLower(spec.Term))
}

// NewNameContainsSpecification creates a case-insensitive name filter.
func NewNameContainsSpecification(term string) shared.Specification[Item] {
	return NameContainsSpecification{Term: strings.TrimSpace(term)}
}

// PriceBetweenSpecification matches items priced within an inclusive range.
type PriceBetweenSpecification struct {
	Min shared.Money
	Max shared.Money
}

func (spec PriceBetweenSpecification) IsSatisfiedBy(item Item) bool {
	price := item.UnitPrice()
	return price.IsGreaterThanOrEqual(spec.Min) && price.IsLessThanOrEqual(spec.Max)
}

// NewPriceBetweenSpecification creates an inclusive price range filter.
func NewPriceBetweenSpecification(min, max shared.Money) shared.Specification[Item] {
	return PriceBetweenSpecification{Min: min, Max: max}
}

// ByKindSpecification matches items of one variant.
type ByKindSpecification struct {
	Kind Kind
}

func (spec ByKindSpecification) IsSatisfiedBy(item Item) bool {
	return item.Kind() == spec.Kind
}

// NewByKindSpecification creates a variant filter.
func NewByKindSpecification(kind Kind) shared.Specification[Item] {
	return ByKindSpecification{Kind: kind}
}
