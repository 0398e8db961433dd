// Package ledger maintains the persisted stock ledger: cumulative received
// quantity, current on-hand quantity and a derived stock status per SKU.
package ledger

import "errors"

// Status labels the derived stock state of a ledger row.
type Status string

const (
	// StatusInStock means more than ten units on hand.
	StatusInStock Status = "In stock"
	// StatusLowStock means one to ten units on hand.
	StatusLowStock Status = "Low stock"
	// StatusOutOfStock means exactly zero units on hand.
	StatusOutOfStock Status = "Out of stock"
	// StatusBackordered means sales outran stock and on-hand went negative.
	StatusBackordered Status = "Backordered"
)

// StatusFor derives the status from the on-hand quantity. Stored status is
// always recomputed through this after every mutation and must never be
// set independently.
func StatusFor(stockLeft int) Status {
	switch {
	case stockLeft < 0:
		return StatusBackordered
	case stockLeft == 0:
		return StatusOutOfStock
	case stockLeft <= 10:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// InventoryRecord is one persisted ledger row. SKU is the upsert key; for
// unmatched invoice items it holds the raw item name so the quantity stays
// visible as a pseudo-product.
type InventoryRecord struct {
	SKU         string `json:"sku"`
	ItemName    string `json:"item_name"`
	StockBought int    `json:"stock_bought"`
	StockLeft   int    `json:"stock_left"`
	Status      Status `json:"status"`
	// LastInvoice is a free-text " | "-joined trail of invoice numbers
	// that touched this row.
	LastInvoice string `json:"last_updated_from_invoice"`
	InvoiceDate string `json:"invoice_date,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// NewInventoryRecord validates required fields at creation time.
func NewInventoryRecord(sku, itemName string) (InventoryRecord, error) {
	if sku == "" {
		return InventoryRecord{}, errors.New("ledger: sku required")
	}
	if itemName == "" {
		return InventoryRecord{}, errors.New("ledger: item name required")
	}
	return InventoryRecord{SKU: sku, ItemName: itemName, Status: StatusFor(0)}, nil
}

// ErrRecordNotFound indicates a missing ledger row.
var ErrRecordNotFound = errors.New("ledger: record not found")
