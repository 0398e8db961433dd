package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/thrive-ops/thrive-ops/internal/catalog"
	"github.com/thrive-ops/thrive-ops/internal/ingest"
	"github.com/thrive-ops/thrive-ops/internal/sales"
)

// CatalogSource supplies the catalog snapshot used for SKU resolution.
type CatalogSource interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// SkippedEntry reports one batch entry that could not be applied. The rest
// of the batch still commits; there is no all-or-nothing transaction.
type SkippedEntry struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// ApplyResult summarises one ledger mutation pass.
type ApplyResult struct {
	Updated int            `json:"updated"`
	Skipped []SkippedEntry `json:"skipped,omitempty"`
}

// Service applies invoice batches and sales history to the stock ledger.
//
// The read-modify-write against the store (read row, compute, upsert) is
// not transactionally isolated: two operators committing against the same
// SKU concurrently can lose an update. The console serialises commits
// through one operator session, which is the assumed usage here; a
// multi-writer deployment needs an atomic increment at the storage layer.
type Service struct {
	logger  *slog.Logger
	repo    Repository
	catalog CatalogSource
}

// NewService builds the ledger service.
func NewService(logger *slog.Logger, repo Repository, catalog CatalogSource) *Service {
	return &Service{logger: logger, repo: repo, catalog: catalog}
}

// ApplyInvoiceBatch adds the aggregated invoice quantities to the ledger:
// stock_bought and stock_left both grow, the invoice ref trail extends,
// dates fill in when the incoming value is non-empty, and status is
// recomputed. Rows are created on first mention. Re-applying the same
// invoice double-counts stock; the engine does not deduplicate by invoice
// number.
func (s *Service) ApplyInvoiceBatch(ctx context.Context, entries []ingest.InvoiceSummaryEntry) (ApplyResult, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("ledger: load catalog snapshot: %w", err)
	}

	var result ApplyResult
	for _, entry := range entries {
		key := entry.SKU
		imageURL := ""
		if key == "" {
			if product, ok := snap.ProductByName(entry.Key); ok {
				key = product.SKU
				imageURL = product.ImageURL
			} else {
				// No SKU anywhere: the raw name itself becomes the
				// ledger key so the quantity stays visible.
				key = entry.Key
			}
		} else if product, ok := snap.ProductBySKU(key); ok {
			imageURL = product.ImageURL
		}

		rec, err := s.repo.GetBySKU(ctx, key)
		switch {
		case errors.Is(err, ErrRecordNotFound):
			rec, err = NewInventoryRecord(key, entry.Key)
			if err != nil {
				result.Skipped = append(result.Skipped, SkippedEntry{Key: entry.Key, Reason: err.Error()})
				continue
			}
			rec.StockBought = entry.Quantity
			rec.StockLeft = entry.Quantity
			rec.LastInvoice = entry.InvoiceRefs
			rec.ImageURL = imageURL
		case err != nil:
			result.Skipped = append(result.Skipped, SkippedEntry{Key: entry.Key, Reason: err.Error()})
			continue
		default:
			rec.StockBought += entry.Quantity
			rec.StockLeft += entry.Quantity
			if rec.LastInvoice != "" {
				rec.LastInvoice += " | " + entry.InvoiceRefs
			} else {
				rec.LastInvoice = entry.InvoiceRefs
			}
		}
		if entry.InvoiceDate != "" {
			rec.InvoiceDate = entry.InvoiceDate
		}
		if entry.DueDate != "" {
			rec.DueDate = entry.DueDate
		}
		rec.Status = StatusFor(rec.StockLeft)

		if err := s.repo.Upsert(ctx, rec); err != nil {
			s.logger.Warn("ledger upsert failed", slog.String("key", key), slog.Any("error", err))
			result.Skipped = append(result.Skipped, SkippedEntry{Key: entry.Key, Reason: err.Error()})
			continue
		}
		result.Updated++
	}
	return result, nil
}

// ApplySalesHistory subtracts sold quantities from stock_left. Stock may
// go negative, which is how backorders surface. stock_bought is untouched.
// Entries with no resolvable ledger row are reported, not applied.
func (s *Service) ApplySalesHistory(ctx context.Context, summary sales.Summary) (ApplyResult, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("ledger: load catalog snapshot: %w", err)
	}

	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)

	var result ApplyResult
	for _, name := range names {
		qtySold := summary[name]
		if name == "" || qtySold <= 0 {
			continue
		}

		rec, err := s.findForSale(ctx, snap, name)
		if errors.Is(err, ErrRecordNotFound) {
			result.Skipped = append(result.Skipped, SkippedEntry{Key: name, Reason: "no matching ledger row"})
			continue
		}
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedEntry{Key: name, Reason: err.Error()})
			continue
		}

		rec.StockLeft -= qtySold
		rec.Status = StatusFor(rec.StockLeft)
		if err := s.repo.Upsert(ctx, rec); err != nil {
			s.logger.Warn("ledger upsert failed", slog.String("key", rec.SKU), slog.Any("error", err))
			result.Skipped = append(result.Skipped, SkippedEntry{Key: name, Reason: err.Error()})
			continue
		}
		result.Updated++
	}
	return result, nil
}

func (s *Service) findForSale(ctx context.Context, snap *catalog.Snapshot, name string) (InventoryRecord, error) {
	if product, ok := snap.ProductByName(name); ok {
		rec, err := s.repo.GetBySKU(ctx, product.SKU)
		if err == nil || !errors.Is(err, ErrRecordNotFound) {
			return rec, err
		}
	}
	return s.repo.GetByName(ctx, name)
}

// SeedFromCatalog creates a zero-stock ledger row for every catalog
// product that has none yet, carrying the product image. Existing rows are
// left alone. Returns the number of rows created.
func (s *Service) SeedFromCatalog(ctx context.Context) (int, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("ledger: load catalog snapshot: %w", err)
	}
	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		seen[rec.SKU] = struct{}{}
	}

	created := 0
	for _, p := range snap.Products {
		if _, ok := seen[p.SKU]; ok {
			continue
		}
		rec, err := NewInventoryRecord(p.SKU, p.Name)
		if err != nil {
			s.logger.Warn("skip catalog product", slog.String("sku", p.SKU), slog.Any("error", err))
			continue
		}
		rec.ImageURL = p.ImageURL
		if err := s.repo.Upsert(ctx, rec); err != nil {
			s.logger.Warn("seed ledger row failed", slog.String("sku", p.SKU), slog.Any("error", err))
			continue
		}
		created++
	}
	return created, nil
}

// List returns every ledger row.
func (s *Service) List(ctx context.Context) ([]InventoryRecord, error) {
	return s.repo.ListAll(ctx)
}

// RepairStatuses recomputes the derived status for every row and rewrites
// rows whose stored status drifted. Returns the number of repaired rows.
func (s *Service) RepairStatuses(ctx context.Context) (int, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	repaired := 0
	for _, rec := range records {
		want := StatusFor(rec.StockLeft)
		if rec.Status == want {
			continue
		}
		rec.Status = want
		if err := s.repo.Upsert(ctx, rec); err != nil {
			s.logger.Warn("status repair failed", slog.String("sku", rec.SKU), slog.Any("error", err))
			continue
		}
		repaired++
	}
	return repaired, nil
}
