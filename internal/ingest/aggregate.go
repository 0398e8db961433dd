package ingest

// Aggregate merges resolved line items from every file in an upload batch
// into one per-key summary, ordered by first appearance.
//
// Merge semantics when a key recurs (within one file or across files):
// quantity sums; invoice refs concatenate with " | " and are never
// deduplicated; unit price keeps the first non-absent value; dates keep
// the first non-empty value. The unit-price/invoice-ref asymmetry is
// deliberate: a known price must not be clobbered by a blank one while the
// ref trail still records every contributing invoice.
func Aggregate(results []FileResult) BatchSummary {
	var summary BatchSummary
	index := make(map[string]int)

	for _, result := range results {
		ref := result.Metadata.InvoiceNumber
		for _, item := range result.Items {
			if i, ok := index[item.Key]; ok {
				entry := &summary.Entries[i]
				entry.Quantity += item.Quantity
				entry.InvoiceRefs += " | " + ref
				if !entry.UnitPrice.Valid && item.UnitPrice.Valid {
					entry.UnitPrice = item.UnitPrice
				}
				if entry.InvoiceDate == "" {
					entry.InvoiceDate = result.Metadata.InvoiceDate
				}
				if entry.DueDate == "" {
					entry.DueDate = result.Metadata.DueDate
				}
				continue
			}

			index[item.Key] = len(summary.Entries)
			summary.Entries = append(summary.Entries, InvoiceSummaryEntry{
				Key:         item.Key,
				SKU:         item.SKU,
				Quantity:    item.Quantity,
				InvoiceRefs: ref,
				UnitPrice:   item.UnitPrice,
				InvoiceDate: result.Metadata.InvoiceDate,
				DueDate:     result.Metadata.DueDate,
				Resolved:    item.Resolved,
			})
		}
	}

	for _, entry := range summary.Entries {
		summary.TotalQuantity += entry.Quantity
	}
	return summary
}
