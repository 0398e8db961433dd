package ingest

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thrive-ops/thrive-ops/internal/catalog"
)

type csvColumns struct {
	item      int
	sku       int
	quantity  int
	unitPrice int
	amount    int
}

// findCSVHeader locates the item table header row by content: its first
// cell is exactly "item" and the row also mentions a SKU or quantity
// column. Exports bury the table under free-form banner rows, so row 0 is
// never trusted.
func findCSVHeader(table [][]string) (int, csvColumns, bool) {
	cols := csvColumns{item: -1, sku: -1, quantity: -1, unitPrice: -1, amount: -1}
	for idx, row := range table {
		if len(row) == 0 {
			continue
		}
		first := strings.ToLower(strings.TrimSpace(row[0]))
		joined := strings.ToLower(strings.Join(row, " "))
		if first != "item" || (!strings.Contains(joined, "sku") && !strings.Contains(joined, "quantity")) {
			continue
		}
		for colIdx, cell := range row {
			value := strings.ToLower(strings.TrimSpace(cell))
			switch {
			case value == "item":
				cols.item = colIdx
			case strings.Contains(value, "sku"):
				cols.sku = colIdx
			case strings.Contains(value, "quantity") || strings.Contains(value, "qty"):
				cols.quantity = colIdx
			case strings.Contains(value, "unit") && strings.Contains(value, "price"):
				cols.unitPrice = colIdx
			case value == "amount":
				cols.amount = colIdx
			}
		}
		return idx, cols, true
	}
	return 0, cols, false
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// cellInt reads an integer cell, tolerating thousands separators, dollar
// signs and a trailing ".0" from spreadsheet round-trips.
func cellInt(s string) (int, bool) {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "$", "")
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// parseCSVTable scans a loosely-shaped CSV invoice export for item rows.
func parseCSVTable(table [][]string) (InvoiceMetadata, []RawLineItem) {
	meta := metadataFromTable(table)

	headerIdx, cols, found := findCSVHeader(table)
	if !found {
		return meta, nil
	}

	var items []RawLineItem
	for _, row := range table[headerIdx+1:] {
		name := cellAt(row, cols.item)
		if name == "" || matchesStoplist(name, csvStoplist) {
			continue
		}
		name = catalog.NormalizeName(name)

		sku := cellAt(row, cols.sku)

		quantity := 0
		if n, ok := cellInt(cellAt(row, cols.quantity)); ok {
			quantity = n
		}
		if quantity <= 0 {
			// Ragged exports shift the quantity into a neighbouring
			// column; try every other cell for a plausible count.
			for colIdx := range row {
				if colIdx == cols.item || colIdx == cols.sku {
					continue
				}
				if n, ok := cellInt(row[colIdx]); ok && n >= 1 && n <= 10000 {
					quantity = n
					break
				}
			}
		}

		var unitPrice, lineTotal decimal.NullDecimal
		if price, ok := parseMoney(cellAt(row, cols.unitPrice)); ok {
			unitPrice = decimal.NullDecimal{Decimal: price, Valid: true}
		}
		if amount, ok := parseMoney(cellAt(row, cols.amount)); ok {
			lineTotal = decimal.NullDecimal{Decimal: amount, Valid: true}
		}
		if !unitPrice.Valid && lineTotal.Valid && quantity > 0 {
			unitPrice = decimal.NullDecimal{
				Decimal: lineTotal.Decimal.Div(decimal.NewFromInt(int64(quantity))),
				Valid:   true,
			}
		}

		if quantity <= 0 {
			continue
		}
		items = append(items, RawLineItem{
			RawName:   name,
			RawSKU:    sku,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}
	return meta, items
}
