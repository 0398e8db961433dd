package ingest

import (
	"strings"

	"github.com/thrive-ops/thrive-ops/internal/catalog"
)

// resolution is the outcome of a single matcher tier.
type resolution struct {
	product    catalog.Product
	legacyName string
}

// matcher is one tier of the ranked matching strategy. A nil result means
// "no match, fall through to the next tier".
type matcher func(item RawLineItem, snap *catalog.Snapshot) *resolution

// matchers is the tier order. Legacy exact beats current exact beats the
// partial tiers; a raw SKU token is the last resort because SKU tokens are
// frequently misparsed from invoice text. Reorder here, not in Resolve.
var matchers = []matcher{
	matchLegacyExact,
	matchCatalogExact,
	matchLegacyPartial,
	matchCatalogPartial,
	matchRawSKU,
}

// Resolve maps a raw line item to a canonical catalog product. Unmatched
// items are never dropped: they come back keyed by their raw name so the
// operator still sees the quantity and can reconcile by hand.
func Resolve(item RawLineItem, snap *catalog.Snapshot) ResolvedLineItem {
	for _, match := range matchers {
		if res := match(item, snap); res != nil {
			return ResolvedLineItem{
				RawLineItem: item,
				Key:         res.product.Name,
				SKU:         res.product.SKU,
				LegacyName:  res.legacyName,
				Resolved:    true,
			}
		}
	}
	return ResolvedLineItem{RawLineItem: item, Key: item.RawName}
}

func matchLegacyExact(item RawLineItem, snap *catalog.Snapshot) *resolution {
	if item.RawName == "" {
		return nil
	}
	for _, entry := range snap.Legacy {
		if !strings.EqualFold(item.RawName, entry.NormalizedName) {
			continue
		}
		// A legacy mapping only counts when its SKU is still live.
		if product, ok := snap.ProductBySKU(entry.SKU); ok {
			return &resolution{product: product, legacyName: entry.Name}
		}
	}
	return nil
}

func matchCatalogExact(item RawLineItem, snap *catalog.Snapshot) *resolution {
	if item.RawName == "" {
		return nil
	}
	if product, ok := snap.ProductByName(item.RawName); ok {
		return &resolution{product: product}
	}
	return nil
}

func matchLegacyPartial(item RawLineItem, snap *catalog.Snapshot) *resolution {
	if item.RawName == "" {
		return nil
	}
	itemLower := strings.ToLower(item.RawName)
	for _, entry := range snap.Legacy {
		entryLower := strings.ToLower(entry.NormalizedName)
		if entryLower == "" {
			continue
		}
		if strings.Contains(itemLower, entryLower) || strings.Contains(entryLower, itemLower) {
			if product, ok := snap.ProductBySKU(entry.SKU); ok {
				return &resolution{product: product, legacyName: entry.Name}
			}
		}
	}
	return nil
}

func matchCatalogPartial(item RawLineItem, snap *catalog.Snapshot) *resolution {
	if item.RawName == "" {
		return nil
	}
	itemLower := strings.ToLower(item.RawName)
	for _, p := range snap.Products {
		productLower := strings.ToLower(p.NormalizedName)
		if productLower == "" {
			continue
		}
		if strings.Contains(itemLower, productLower) || strings.Contains(productLower, itemLower) {
			return &resolution{product: p.Product}
		}
	}
	return nil
}

func matchRawSKU(item RawLineItem, snap *catalog.Snapshot) *resolution {
	if item.RawSKU == "" {
		return nil
	}
	if product, ok := snap.ProductBySKU(item.RawSKU); ok {
		return &resolution{product: product}
	}
	return nil
}
