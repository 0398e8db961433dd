package ingest

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseMoney strips currency formatting ("$1,234.50") and parses the rest
// as a decimal.
func parseMoney(s string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", ""))
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}

// metadataFromLines scans extracted PDF lines for labelled header fields.
// The first match per label wins.
func metadataFromLines(lines []string) InvoiceMetadata {
	meta := InvoiceMetadata{InvoiceNumber: UnknownInvoiceNumber}
	numberSet := false

	for _, line := range lines {
		lower := strings.ToLower(line)
		value := func() string {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) < 2 {
				return ""
			}
			return strings.TrimSpace(parts[1])
		}

		switch {
		case !numberSet && strings.Contains(lower, "invoice number:"):
			if fields := strings.Fields(value()); len(fields) > 0 {
				meta.InvoiceNumber = fields[0]
				numberSet = true
			}
		case meta.InvoiceDate == "" && strings.Contains(lower, "invoice date:"):
			// The date column and the "To:" address column share a line
			// in the known layout.
			meta.InvoiceDate = strings.TrimSpace(strings.SplitN(value(), "To:", 2)[0])
		case meta.DueDate == "" && strings.Contains(lower, "due date:"):
			fields := strings.Fields(value())
			if len(fields) > 3 {
				fields = fields[:3]
			}
			meta.DueDate = strings.Join(fields, " ")
		case !meta.InvoiceTotal.Valid && strings.Contains(lower, "invoice total:"):
			if total, ok := parseMoney(value()); ok {
				meta.InvoiceTotal = decimal.NullDecimal{Decimal: total, Valid: true}
			}
		}
	}
	return meta
}

// metadataFromTable scans CSV cells for labelled header fields; the value
// lives in the next column of the same row. First match per label wins.
func metadataFromTable(table [][]string) InvoiceMetadata {
	meta := InvoiceMetadata{InvoiceNumber: UnknownInvoiceNumber}
	numberSet := false

	for _, row := range table {
		for i, cell := range row {
			lower := strings.ToLower(cell)
			next := ""
			if i+1 < len(row) {
				next = strings.TrimSpace(row[i+1])
			}

			switch {
			case !numberSet && strings.Contains(lower, "invoice number:"):
				if next != "" {
					meta.InvoiceNumber = next
					numberSet = true
				}
			case meta.InvoiceDate == "" && strings.Contains(lower, "invoice date:"):
				meta.InvoiceDate = next
			case meta.DueDate == "" && strings.Contains(lower, "due date:"):
				meta.DueDate = next
			case !meta.InvoiceTotal.Valid && strings.Contains(lower, "invoice total:"):
				if total, ok := parseMoney(next); ok {
					meta.InvoiceTotal = decimal.NullDecimal{Decimal: total, Valid: true}
				}
			}
		}
	}
	return meta
}
