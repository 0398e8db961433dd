package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thrive-ops/thrive-ops/internal/ingest"
	"github.com/thrive-ops/thrive-ops/internal/platform/httpx"
	"github.com/thrive-ops/thrive-ops/internal/sales"
)

// Handler wires HTTP endpoints for the stock ledger.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	staging  *ingest.StagingStore
	maxBytes int64
}

// NewHandler constructs the ledger handler.
func NewHandler(logger *slog.Logger, service *Service, staging *ingest.StagingStore, maxBytes int64) *Handler {
	return &Handler{logger: logger, service: service, staging: staging, maxBytes: maxBytes}
}

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/invoices/{batchID}/commit", h.commitBatch)
	r.Post("/sales-history", h.applySalesHistory)
	r.Post("/seed", h.seed)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list ledger", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *Handler) commitBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	batch, err := h.staging.Get(r.Context(), batchID)
	if errors.Is(err, ingest.ErrBatchNotFound) {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	if err != nil {
		h.logger.Error("load staged batch", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	result, err := h.service.ApplyInvoiceBatch(r.Context(), batch.Summary.Entries)
	if err != nil {
		h.logger.Error("apply invoice batch", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.staging.Delete(r.Context(), batchID); err != nil {
		h.logger.Warn("delete staged batch", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) applySalesHistory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Upload", err.Error())
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: a sales history CSV file is required", httpx.ErrValidation))
		return
	}
	defer file.Close()

	doc, err := ingest.ExtractCSV(file)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Upload", err.Error())
		return
	}
	if len(doc.Table) < 2 {
		httpx.RespondError(w, fmt.Errorf("%w: sales history needs a header row and at least one data row", httpx.ErrValidation))
		return
	}
	header, dataRows := doc.Table[0], doc.Table[1:]

	var summary sales.Summary
	if col, ok := sales.DetectCombinedColumn(header); ok {
		snap, err := h.service.catalog.Snapshot(r.Context())
		if err != nil {
			h.logger.Error("load catalog snapshot", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		names := make([]string, 0, len(snap.Products))
		for _, p := range snap.Products {
			names = append(names, p.Name)
		}
		summary = sales.ParseCombined(dataRows, col, names)
	} else {
		productColumn := r.FormValue("product_column")
		quantityColumn := r.FormValue("quantity_column")
		if productColumn == "" || quantityColumn == "" {
			httpx.RespondError(w, fmt.Errorf(
				"%w: product_column and quantity_column are required when no combined column is present",
				httpx.ErrValidation))
			return
		}
		productIdx, err := sales.FindColumn(header, productColumn)
		if err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
			return
		}
		quantityIdx, err := sales.FindColumn(header, quantityColumn)
		if err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
			return
		}
		summary = sales.FromColumns(dataRows, productIdx, quantityIdx)
	}

	result, err := h.service.ApplySalesHistory(r.Context(), summary)
	if err != nil {
		h.logger.Error("apply sales history", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.SeedFromCatalog(r.Context())
	if err != nil {
		h.logger.Error("seed ledger", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"created": created})
}
