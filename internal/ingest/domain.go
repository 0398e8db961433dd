// Package ingest implements the invoice ingestion pipeline: document text
// extraction, line item parsing, product resolution and batch aggregation.
package ingest

import (
	"errors"

	"github.com/shopspring/decimal"
)

// UnknownInvoiceNumber is used when a file carries no invoice number label.
const UnknownInvoiceNumber = "Unknown"

// RawLineItem is one candidate item row pulled out of an invoice document.
// It exists only while a single file is being parsed.
type RawLineItem struct {
	RawName   string              `json:"raw_name"`
	RawSKU    string              `json:"raw_sku,omitempty"`
	Quantity  int                 `json:"quantity"`
	UnitPrice decimal.NullDecimal `json:"unit_price"`
	LineTotal decimal.NullDecimal `json:"line_total"`
}

// ResolvedLineItem is a RawLineItem after catalog resolution. When no
// catalog or legacy match exists the item is kept and keyed by its raw
// name so unmatched quantity stays visible for manual reconciliation.
type ResolvedLineItem struct {
	RawLineItem

	// Key is the canonical product display name, or the raw name when
	// resolution failed.
	Key string `json:"key"`
	// SKU is set when a catalog product matched.
	SKU string `json:"sku,omitempty"`
	// LegacyName carries the retired display name when a legacy entry
	// matched; kept for display only, never used as a ledger key.
	LegacyName string `json:"legacy_name,omitempty"`
	Resolved   bool   `json:"resolved"`
}

// InvoiceMetadata is the header metadata scraped from one invoice file.
type InvoiceMetadata struct {
	InvoiceNumber string              `json:"invoice_number"`
	InvoiceDate   string              `json:"invoice_date,omitempty"`
	DueDate       string              `json:"due_date,omitempty"`
	InvoiceTotal  decimal.NullDecimal `json:"invoice_total"`
}

// FileResult is the parse output for a single uploaded file.
type FileResult struct {
	FileName string             `json:"file_name"`
	Metadata InvoiceMetadata    `json:"metadata"`
	Items    []ResolvedLineItem `json:"items"`
}

// InvoiceSummaryEntry is the aggregated per-key record across all files in
// one upload batch.
type InvoiceSummaryEntry struct {
	Key         string              `json:"key"`
	SKU         string              `json:"sku,omitempty"`
	Quantity    int                 `json:"quantity"`
	InvoiceRefs string              `json:"invoice_refs"`
	UnitPrice   decimal.NullDecimal `json:"unit_price"`
	InvoiceDate string              `json:"invoice_date,omitempty"`
	DueDate     string              `json:"due_date,omitempty"`
	Resolved    bool                `json:"resolved"`
}

// FileError reports one file that was excluded from a batch.
type FileError struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// BatchSummary is the aggregated result of one upload batch, shown to the
// operator for confirmation before commit.
type BatchSummary struct {
	Entries       []InvoiceSummaryEntry `json:"entries"`
	TotalQuantity int                   `json:"total_quantity"`
	Failures      []FileError           `json:"failures,omitempty"`
}

// ErrExtraction indicates an unreadable or corrupt file. The file is
// excluded from the batch; sibling files continue processing.
var ErrExtraction = errors.New("ingest: extraction failed")

// ErrUnsupportedFile indicates a file type other than .pdf or .csv.
var ErrUnsupportedFile = errors.New("ingest: unsupported file type")
