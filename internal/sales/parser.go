// Package sales turns exported sales-history tables into per-product sold
// quantities for the subtractive ledger pass.
package sales

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Summary maps a product name to its total sold quantity.
type Summary map[string]int

// combinedColumnLabel marks exports where every order's products and
// quantities are mashed into one free-text cell.
const combinedColumnLabel = "product(s) ordered & quantity"

// ErrColumnNotFound indicates a requested column header is missing.
var ErrColumnNotFound = errors.New("sales: column not found")

// DetectCombinedColumn reports the index of the combined
// products-and-quantity column when the header row has one.
func DetectCombinedColumn(header []string) (int, bool) {
	for i, cell := range header {
		if strings.Contains(strings.ToLower(cell), combinedColumnLabel) {
			return i, true
		}
	}
	return 0, false
}

// FindColumn locates a header cell by case-insensitive exact name.
func FindColumn(header []string, name string) (int, error) {
	for i, cell := range header {
		if strings.EqualFold(strings.TrimSpace(cell), strings.TrimSpace(name)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// ParseCombined scans the free-text column of every data row for known
// product names with an optional "x N" / "× N" quantity suffix. Names are
// tried longest first so "Widget Pro" is never shadowed by "Widget", and
// each matched span is consumed before shorter names run.
func ParseCombined(rows [][]string, col int, productNames []string) Summary {
	names := make([]string, len(productNames))
	copy(names, productNames)
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	patterns := make([]*regexp.Regexp, len(names))
	for i, name := range names {
		patterns[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `(?:\s*[x×]\s*(\d+))?`)
	}

	summary := Summary{}
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		remaining := row[col]
		if strings.TrimSpace(remaining) == "" {
			continue
		}
		for i, name := range names {
			matches := patterns[i].FindAllStringSubmatch(remaining, -1)
			if len(matches) == 0 {
				continue
			}
			for _, match := range matches {
				qty := 1
				if match[1] != "" {
					if n, err := strconv.Atoi(match[1]); err == nil {
						qty = n
					}
				}
				summary[name] += qty
			}
			remaining = patterns[i].ReplaceAllString(remaining, "")
		}
	}
	return summary
}

// FromColumns sums quantities grouped by an explicit product column and
// quantity column pairing chosen by the operator.
func FromColumns(rows [][]string, productCol, qtyCol int) Summary {
	summary := Summary{}
	for _, row := range rows {
		if productCol >= len(row) || qtyCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[productCol])
		if name == "" {
			continue
		}
		cleaned := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(row[qtyCol]), ",", ""), "$", "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}
		summary[name] += int(f)
	}
	return summary
}
