package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetadataFromLines(t *testing.T) {
	lines := []string{
		"ACME Supply Co",
		"Invoice Number: INV-1001 extra junk",
		"Invoice Date: 2024-03-05 To: Thrive Ops, 12 Main St",
		"Due Date: April 4, 2024 remit within thirty days",
		"Invoice Total: $1,234.50",
		"Invoice Number: INV-9999",
	}
	meta := metadataFromLines(lines)

	require.Equal(t, "INV-1001", meta.InvoiceNumber, "first labelled value wins")
	require.Equal(t, "2024-03-05", meta.InvoiceDate)
	require.Equal(t, "April 4, 2024", meta.DueDate)
	require.True(t, meta.InvoiceTotal.Valid)
	require.Equal(t, "1234.5", meta.InvoiceTotal.Decimal.String())
}

func TestMetadataFromLinesMissingLabels(t *testing.T) {
	meta := metadataFromLines([]string{"no headers here", "just noise"})

	require.Equal(t, UnknownInvoiceNumber, meta.InvoiceNumber)
	require.Empty(t, meta.InvoiceDate)
	require.Empty(t, meta.DueDate)
	require.False(t, meta.InvoiceTotal.Valid)
}

func TestMetadataFromTable(t *testing.T) {
	table := [][]string{
		{"ACME Supply Co", ""},
		{"Invoice Number:", "INV-2002", "Invoice Date:", "2024-03-06"},
		{"Due Date:", "2024-04-06"},
		{"Invoice Total:", "$99.00"},
		{"Invoice Number:", "INV-8888"},
	}
	meta := metadataFromTable(table)

	require.Equal(t, "INV-2002", meta.InvoiceNumber)
	require.Equal(t, "2024-03-06", meta.InvoiceDate)
	require.Equal(t, "2024-04-06", meta.DueDate)
	require.True(t, meta.InvoiceTotal.Valid)
	require.Equal(t, "99", meta.InvoiceTotal.Decimal.String())
}

func TestParseMoney(t *testing.T) {
	value, ok := parseMoney("$1,234.50")
	require.True(t, ok)
	require.Equal(t, "1234.5", value.String())

	_, ok = parseMoney("")
	require.False(t, ok)

	_, ok = parseMoney("n/a")
	require.False(t, ok)
}
