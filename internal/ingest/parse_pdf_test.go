package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePDFLines(t *testing.T) {
	lines := []string{
		"ACME Supply Co",
		"Invoice Number: INV-1001",
		"Item SKU# Quantity Unit price Amount",
		"Widget AB-123 3 $5.00 $15.00",
		"Tumbler 30ozx Large CD-456 2 $12.50 $25.00",
		"Ground Shipping $9.99",
		"Subtotal $40.00",
		"Invoice Total: $49.99",
	}
	meta, items := parsePDFLines(lines)

	require.Equal(t, "INV-1001", meta.InvoiceNumber)
	require.Len(t, items, 2)

	require.Equal(t, "Widget", items[0].RawName)
	require.Equal(t, "AB-123", items[0].RawSKU)
	require.Equal(t, 3, items[0].Quantity)
	require.True(t, items[0].UnitPrice.Valid)
	require.Equal(t, "5", items[0].UnitPrice.Decimal.String())
	require.True(t, items[0].LineTotal.Valid)
	require.Equal(t, "15", items[0].LineTotal.Decimal.String())

	// Multiplier spacing is normalized during parsing.
	require.Equal(t, "Tumbler 30oz x Large", items[1].RawName)
	require.Equal(t, "CD-456", items[1].RawSKU)
	require.Equal(t, 2, items[1].Quantity)
}

func TestParsePDFLinesNoHeader(t *testing.T) {
	_, items := parsePDFLines([]string{"Widget AB-123 3 $5.00 $15.00"})
	require.Empty(t, items, "rows above the table header are never item lines")
}

func TestParsePDFLinesLongDigitSKU(t *testing.T) {
	lines := []string{
		"Item SKU# Quantity",
		"Bulk Beans 1234567890123 12 $3.00 $36.00",
	}
	_, items := parsePDFLines(lines)
	require.Len(t, items, 1)
	require.Equal(t, "1234567890123", items[0].RawSKU)
	require.Equal(t, "Bulk Beans", items[0].RawName)
	require.Equal(t, 12, items[0].Quantity)
}

func TestParsePDFLinesUnitPriceDerivedFromTotal(t *testing.T) {
	lines := []string{
		"Item SKU# Quantity",
		"Widget AB-123 4 $20.00",
	}
	_, items := parsePDFLines(lines)
	require.Len(t, items, 1)
	// A single dollar token is the unit price; no total means nothing
	// to derive.
	require.Equal(t, "20", items[0].UnitPrice.Decimal.String())
	require.False(t, items[0].LineTotal.Valid)
}

func TestParsePDFLinesSkipsUnquantifiedRows(t *testing.T) {
	lines := []string{
		"Item SKU# Quantity",
		"Widget AB-123 $5.00 $15.00",
		"Short AB-1",
	}
	_, items := parsePDFLines(lines)
	require.Empty(t, items)
}

func TestParsePDFLinesQuantityRange(t *testing.T) {
	lines := []string{
		"Item SKU# Quantity",
		"Pallet Load AB-123 5000 $1.00",
	}
	_, items := parsePDFLines(lines)
	require.Empty(t, items, "integers above 1000 are not plausible quantities")
}

func TestMatchesStoplist(t *testing.T) {
	require.True(t, matchesStoplist("Ground Shipping", pdfStoplist))
	require.True(t, matchesStoplist("INVOICE TOTAL: $10", csvStoplist))
	require.False(t, matchesStoplist("Widget", pdfStoplist))
}
