package catalog

import (
	"fmt"
	"strings"

	"github.com/realyassine/SouqFX/domain/shared"
)

// Kind discriminates the catalog item variants.
type Kind string

const (
	KindElectronics Kind = "ELECTRONICS"
	KindClothing    Kind = "CLOTHING"
)

// ParseKind normalises a kind label from user input or a stored row.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(KindElectronics):
		return KindElectronics, nil
	case string(KindClothing):
		return KindClothing, nil
	default:
		return "", NewUnknownKindError(s)
	}
}

// Electronics holds the variant data of an electronics item.
type Electronics struct {
	Brand          string
	WarrantyMonths int
}

// Clothing holds the variant data of a clothing item.
type Clothing struct {
	Size     string
	Material string
}

// Item is a catalog product. It is one closed union: every item is
// either electronics or clothing, discriminated by kind, and variant
// data is reached through the comma-ok accessors rather than casts.
// Items are immutable; Reprice returns an adjusted copy.
type Item struct {
	id        int
	name      string
	unitPrice shared.Money
	kind      Kind

	// electronics variant
	brand          string
	warrantyMonths int

	// clothing variant
	size     string
	material string
}

// NewElectronics creates an electronics item after validating the
// shared and variant fields.
func NewElectronics(id int, name string, unitPrice shared.Money, brand string, warrantyMonths int) (Item, error) {
	if err := validateCommon(id, name, unitPrice); err != nil {
		return Item{}, err
	}
	if warrantyMonths < 0 {
		return Item{}, NewNegativeWarrantyError(name)
	}

	return Item{
		id:             id,
		name:           strings.TrimSpace(name),
		unitPrice:      unitPrice,
		kind:           KindElectronics,
		brand:          strings.TrimSpace(brand),
		warrantyMonths: warrantyMonths,
	}, nil
}

// NewClothing creates a clothing item after validating the shared fields.
func NewClothing(id int, name string, unitPrice shared.Money, size, material string) (Item, error) {
	if err := validateCommon(id, name, unitPrice); err != nil {
		return Item{}, err
	}

	return Item{
		id:        id,
		name:      strings.TrimSpace(name),
		unitPrice: unitPrice,
		kind:      KindClothing,
		size:      strings.TrimSpace(size),
		material:  strings.TrimSpace(material),
	}, nil
}

func validateCommon(id int, name string, unitPrice shared.Money) error {
	if id <= 0 {
		return NewInvalidItemIDError(id)
	}
	if strings.TrimSpace(name) == "" {
		return NewEmptyItemNameError()
	}
	if unitPrice.IsNegative() {
		return NewNegativePriceError(name)
	}
	return nil
}

// ID returns the catalog identifier.
func (i Item) ID() int {
	return i.id
}

// Name returns the display name.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the price of one unit.
func (i Item) UnitPrice() shared.Money {
	return i.unitPrice
}

// Kind returns the variant discriminator.
func (i Item) Kind() Kind {
	return i.kind
}

// IsZero reports whether the item is the uninitialised zero value.
func (i Item) IsZero() bool {
	return i.kind == ""
}

// Electronics returns the electronics variant data. The second return
// is false when the item is not electronics.
func (i Item) Electronics() (Electronics, bool) {
	if i.kind != KindElectronics {
		return Electronics{}, false
	}
	return Electronics{
		Brand:          i.brand,
		WarrantyMonths: i.warrantyMonths,
	}, true
}

// Clothing returns the clothing variant data. The second return is
// false when the item is not clothing.
func (i Item) Clothing() (Clothing, bool) {
	if i.kind != KindClothing {
		return Clothing{}, false
	}
	return Clothing{
		Size:     i.size,
		Material: i.material,
	}, true
}

// Reprice returns a copy of the item with a new unit price.
func (i Item) Reprice(unitPrice shared.Money) (Item, error) {
	if unitPrice.IsNegative() {
		return Item{}, NewNegativePriceError(i.name)
	}
	repriced := i
	repriced.unitPrice = unitPrice
	return repriced, nil
}

// String renders the short display line used in carts and receipts.
func (i Item) String() string {
	switch i.kind {
	case KindElectronics:
		return fmt.Sprintf("[Electronics] %s (%s) - %s", i.name, i.brand, i.unitPrice)
	case KindClothing:
		return fmt.Sprintf("[Clothing] %s (Size: %s) - %s", i.name, i.size, i.unitPrice)
	default:
		return fmt.Sprintf("%s - %s", i.name, i.unitPrice)
	}
}

// Description renders the long form shown on item detail views.
func (i Item) Description() string {
	switch i.kind {
	case KindElectronics:
		return fmt.Sprintf("Electronics: %s by %s | Price: %s | Warranty: %d months",
			i.name, i.brand, i.unitPrice, i.warrantyMonths)
	case KindClothing:
		return fmt.Sprintf("Clothing: %s | Size: %s | Material: %s | Price: %s",
			i.name, i.size, i.material, i.unitPrice)
	default:
		return fmt.Sprintf("%s | Price: %s", i.name, i.unitPrice)
	}
}
