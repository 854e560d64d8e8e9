package csvstore

import (
	"fmt"
	"strconv"
	"time"

	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/domain/order"
	"github.com/realyassine/SouqFX/domain/shared"
)

// Record layouts of the two CSV files. Records only map rows to domain
// values and back; they carry no business logic.

// RowDateLayout is the timestamp format stored in orders.csv.
const RowDateLayout = "2006-01-02 15:04:05"

var (
	productHeader = []string{"TYPE", "ID", "NAME", "PRICE", "EXTRA1", "EXTRA2"}
	orderHeader   = []string{"ORDER_ID", "CUSTOMER", "DATE", "TOTAL", "PAID"}
)

// productRecord mirrors one row of products.csv. The two EXTRA columns
// hold the variant data: brand and warranty months for electronics,
// size and material for clothing.
type productRecord struct {
	Kind   string
	ID     string
	Name   string
	Price  string
	Extra1 string
	Extra2 string
}

// productRecordFromItem converts a catalog item to its row form.
func productRecordFromItem(item catalog.Item) productRecord {
	rec := productRecord{
		Kind:  string(item.Kind()),
		ID:    strconv.Itoa(item.ID()),
		Name:  item.Name(),
		Price: item.UnitPrice().StringFixed(),
	}

	if e, ok := item.Electronics(); ok {
		rec.Extra1 = e.Brand
		rec.Extra2 = strconv.Itoa(e.WarrantyMonths)
	}
	if c, ok := item.Clothing(); ok {
		rec.Extra1 = c.Size
		rec.Extra2 = c.Material
	}

	return rec
}

// productRecordFromRow validates arity and maps a raw row.
func productRecordFromRow(row []string) (productRecord, error) {
	if len(row) != len(productHeader) {
		return productRecord{}, fmt.Errorf("expected %d columns, got %d", len(productHeader), len(row))
	}
	return productRecord{
		Kind:   row[0],
		ID:     row[1],
		Name:   row[2],
		Price:  row[3],
		Extra1: row[4],
		Extra2: row[5],
	}, nil
}

// fields returns the row in column order.
func (r productRecord) fields() []string {
	return []string{r.Kind, r.ID, r.Name, r.Price, r.Extra1, r.Extra2}
}

// toItem rebuilds the domain item, rejecting rows that fail domain
// validation or carry an unknown kind.
func (r productRecord) toItem() (catalog.Item, error) {
	kind, err := catalog.ParseKind(r.Kind)
	if err != nil {
		return catalog.Item{}, err
	}

	id, err := strconv.Atoi(r.ID)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("bad item id %q: %w", r.ID, err)
	}

	price, err := shared.NewMoneyFromString(r.Price, shared.DefaultCurrency)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("bad price %q: %w", r.Price, err)
	}

	switch kind {
	case catalog.KindElectronics:
		warranty, err := strconv.Atoi(r.Extra2)
		if err != nil {
			return catalog.Item{}, fmt.Errorf("bad warranty %q: %w", r.Extra2, err)
		}
		return catalog.NewElectronics(id, r.Name, price, r.Extra1, warranty)
	default:
		return catalog.NewClothing(id, r.Name, price, r.Extra1, r.Extra2)
	}
}

// orderRecord mirrors one row of orders.csv.
type orderRecord struct {
	ID       string
	Customer string
	Date     string
	Total    string
	Paid     string
}

// orderRecordFromDomain converts a persisted order view to its row form.
func orderRecordFromDomain(rec order.Record) orderRecord {
	return orderRecord{
		ID:       strconv.FormatInt(rec.ID, 10),
		Customer: rec.CustomerName,
		Date:     rec.PlacedAt.Format(RowDateLayout),
		Total:    rec.Total.StringFixed(),
		Paid:     strconv.FormatBool(rec.Paid),
	}
}

// orderRecordFromRow validates arity and maps a raw row.
func orderRecordFromRow(row []string) (orderRecord, error) {
	if len(row) != len(orderHeader) {
		return orderRecord{}, fmt.Errorf("expected %d columns, got %d", len(orderHeader), len(row))
	}
	return orderRecord{
		ID:       row[0],
		Customer: row[1],
		Date:     row[2],
		Total:    row[3],
		Paid:     row[4],
	}, nil
}

// fields returns the row in column order.
func (r orderRecord) fields() []string {
	return []string{r.ID, r.Customer, r.Date, r.Total, r.Paid}
}

// toDomain rebuilds the order record.
func (r orderRecord) toDomain() (order.Record, error) {
	id, err := strconv.ParseInt(r.ID, 10, 64)
	if err != nil {
		return order.Record{}, fmt.Errorf("bad order id %q: %w", r.ID, err)
	}

	placedAt, err := time.ParseInLocation(RowDateLayout, r.Date, time.Local)
	if err != nil {
		return order.Record{}, fmt.Errorf("bad date %q: %w", r.Date, err)
	}

	total, err := shared.NewMoneyFromString(r.Total, shared.DefaultCurrency)
	if err != nil {
		return order.Record{}, fmt.Errorf("bad total %q: %w", r.Total, err)
	}

	paid, err := strconv.ParseBool(r.Paid)
	if err != nil {
		return order.Record{}, fmt.Errorf("bad paid flag %q: %w", r.Paid, err)
	}

	return order.Record{
		ID:           id,
		CustomerName: r.Customer,
		PlacedAt:     placedAt,
		Total:        total,
		Paid:         paid,
	}, nil
}
