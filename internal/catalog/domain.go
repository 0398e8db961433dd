package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Product is one entry of the canonical product list. SKU is the stable
// identifier every other table keys on.
type Product struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Status   string          `json:"status"`
	ImageURL string          `json:"image_url"`
}

// LegacyNameEntry maps a retired product's former display name to the SKU
// it resolves to in the current catalog. Several legacy names may map to
// the same SKU.
type LegacyNameEntry struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// ErrProductNotFound indicates a missing catalog row.
var ErrProductNotFound = errors.New("catalog: product not found")

// NewProduct validates required fields at creation time.
func NewProduct(sku, name string, price decimal.Decimal, category, status, imageURL string) (Product, error) {
	if sku == "" {
		return Product{}, errors.New("catalog: sku required")
	}
	if name == "" {
		return Product{}, errors.New("catalog: name required")
	}
	return Product{SKU: sku, Name: name, Price: price, Category: category, Status: status, ImageURL: imageURL}, nil
}
