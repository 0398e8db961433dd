package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thrive-ops/thrive-ops/internal/catalog"
)

// SKU tokens look like "AB-123" (short alpha prefix, hyphen, short
// alphanumeric tail) or a long all-digit code.
var (
	skuToken       = regexp.MustCompile(`^[A-Z]{1,3}-[A-Z0-9]{1,5}$`)
	longDigitToken = regexp.MustCompile(`^\d{10,}$`)
	digitsOnly     = regexp.MustCompile(`^\d+$`)
)

// parsePDFLines scans extracted PDF text for the item table and pulls raw
// line items out of everything below the header line. Token classification
// is position-agnostic because column alignment does not survive text
// extraction.
func parsePDFLines(lines []string) (InvoiceMetadata, []RawLineItem) {
	meta := metadataFromLines(lines)

	headerIdx := -1
	for i, line := range lines {
		if strings.Contains(line, "Item") && strings.Contains(line, "SKU#") && strings.Contains(line, "Quantity") {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return meta, nil
	}

	var items []RawLineItem
	for _, line := range lines[headerIdx+1:] {
		line = strings.TrimSpace(line)
		if line == "" || matchesStoplist(line, pdfStoplist) {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) < 3 {
			continue
		}

		var (
			sku       string
			quantity  int
			unitPrice decimal.NullDecimal
			lineTotal decimal.NullDecimal
		)
		for _, token := range tokens {
			switch {
			case skuToken.MatchString(token) || longDigitToken.MatchString(token):
				sku = token
			case strings.HasPrefix(token, "$"):
				if price, ok := parseMoney(token); ok {
					if !unitPrice.Valid {
						unitPrice = decimal.NullDecimal{Decimal: price, Valid: true}
					} else {
						lineTotal = decimal.NullDecimal{Decimal: price, Valid: true}
					}
				}
			case digitsOnly.MatchString(token):
				if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= 1000 && quantity == 0 {
					quantity = n
				}
			}
		}

		var nameParts []string
		for _, token := range tokens {
			if (sku != "" && token == sku) || strings.HasPrefix(token, "$") {
				break
			}
			nameParts = append(nameParts, token)
		}
		name := catalog.NormalizeName(strings.Join(nameParts, " "))

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
