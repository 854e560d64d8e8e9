package catalog

import (
	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/domain/shared"
)

// sampleItems is the starter catalog written to an empty store. It
// mirrors the shop's product sheet.
func sampleItems() []catalog.Item {
	type electronics struct {
		id       int
		name     string
		price    string
		brand    string
		warranty int
	}
	type clothing struct {
		id       int
		name     string
		price    string
		size     string
		material string
	}

	electronicsRows := []electronics{
		{1, "Laptop", "9999.00", "Dell", 24},
		{2, "Smartphone", "6999.00", "Samsung", 12},
		{3, "Headphones", "1499.00", "Sony", 12},
		{4, "Tablet", "4499.00", "Apple", 12},
		{5, "Smart Watch", "2999.00", "Xiaomi", 12},
	}
	clothingRows := []clothing{
		{6, "Djellaba", "450.00", "L", "Cotton"},
		{7, "Caftan", "1200.00", "M", "Silk"},
		{8, "Babouche", "180.00", "42", "Leather"},
		{9, "T-Shirt", "149.00", "M", "Cotton"},
		{10, "Jeans", "350.00", "L", "Denim"},
	}

	items := make([]catalog.Item, 0, len(electronicsRows)+len(clothingRows))
	for _, row := range electronicsRows {
		item, err := catalog.NewElectronics(row.id, row.name, shared.MustMoney(row.price), row.brand, row.warranty)
		if err != nil {
			panic(err)
		}
		items = append(items, item)
	}
	for _, row := range clothingRows {
		item, err := catalog.NewClothing(row.id, row.name, shared.MustMoney(row.price), row.size, row.material)
		if err != nil {
			panic(err)
		}
		items = append(items, item)
	}

	return items
}
