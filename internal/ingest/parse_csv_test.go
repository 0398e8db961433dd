package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCSVTable(t *testing.T) {
	table := [][]string{
		{"ACME Supply Co export"},
		{"Invoice Number:", "INV-2002"},
		{"Item", "SKU#", "Unit price", "Quantity", "Amount"},
		{"Widget", "AB-123", "$5.00", "3", "$15.00"},
		{"Tumbler 30ozxLarge", "CD-456", "", "2", "$25.00"},
		{"Shipping Cost", "", "", "", "$9.99"},
		{"Invoice Total:", "", "", "", "$49.99"},
	}
	meta, items := parseCSVTable(table)

	require.Equal(t, "INV-2002", meta.InvoiceNumber)
	require.Len(t, items, 2)

	require.Equal(t, "Widget", items[0].RawName)
	require.Equal(t, "AB-123", items[0].RawSKU)
	require.Equal(t, 3, items[0].Quantity)
	require.Equal(t, "5", items[0].UnitPrice.Decimal.String())

	require.Equal(t, "Tumbler 30oz x Large", items[1].RawName)
	require.Equal(t, 2, items[1].Quantity)
	// Missing unit price is derived from amount / quantity.
	require.True(t, items[1].UnitPrice.Valid)
	require.Equal(t, "12.5", items[1].UnitPrice.Decimal.String())
}

func TestParseCSVTableNoHeader(t *testing.T) {
	_, items := parseCSVTable([][]string{{"Widget", "AB-123", "3"}})
	require.Empty(t, items)
}

func TestFindCSVHeader(t *testing.T) {
	table := [][]string{
		{"banner row"},
		{"Item", "SKU#", "Qty", "Unit Price", "Amount"},
	}
	idx, cols, found := findCSVHeader(table)
	require.True(t, found)
	require.Equal(t, 1, idx)
	require.Equal(t, 0, cols.item)
	require.Equal(t, 1, cols.sku)
	require.Equal(t, 2, cols.quantity)
	require.Equal(t, 3, cols.unitPrice)
	require.Equal(t, 4, cols.amount)

	// "Item" alone is not enough: the row must also mention sku or
	// quantity, otherwise banner rows starting with "item" match.
	_, _, found = findCSVHeader([][]string{{"Item", "Description"}})
	require.False(t, found)
}

func TestParseCSVTableQuantityFallback(t *testing.T) {
	table := [][]string{
		{"Item", "SKU#", "Quantity", "Amount"},
		// Quantity slid into the amount column.
		{"Widget", "AB-123", "", "7"},
	}
	_, items := parseCSVTable(table)
	require.Len(t, items, 1)
	require.Equal(t, 7, items[0].Quantity)
}

func TestCellInt(t *testing.T) {
	cases := map[string]struct {
		want int
		ok   bool
	}{
		"3":      {3, true},
		"1,200":  {1200, true},
		"$15":    {15, true},
		"4.0":    {4, true},
		"":       {0, false},
		"Widget": {0, false},
	}
	for in, expect := range cases {
		got, ok := cellInt(in)
		require.Equal(t, expect.ok, ok, "input %q", in)
		require.Equal(t, expect.want, got, "input %q", in)
	}
}

func TestExtractCSV(t *testing.T) {
	raw := "Item,SKU#,Quantity\n\"Widget, large\",AB-123,3\nshort row\n"
	doc, err := ExtractCSV(strings.NewReader(raw))
	require.NoError(t, err)
	require.True(t, doc.IsTabular())
	require.Len(t, doc.Table, 3)
	require.Equal(t, "Widget, large", doc.Table[1][0])
	require.Len(t, doc.Table[2], 1, "ragged rows are kept as-is")
}
