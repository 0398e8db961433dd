package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/thrive-ops/thrive-ops/internal/platform/httpx"
)

// Handler wires HTTP endpoints for invoice upload and review. Committing a
// staged batch to the stock ledger lives on the ledger handler.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	staging  *StagingStore
	maxBytes int64
}

// NewHandler constructs the ingest handler.
func NewHandler(logger *slog.Logger, service *Service, staging *StagingStore, maxBytes int64) *Handler {
	return &Handler{logger: logger, service: service, staging: staging, maxBytes: maxBytes}
}

// MountRoutes registers ingest routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/invoices", h.uploadInvoices)
	r.Get("/batches/{batchID}", h.getBatch)
}

func (h *Handler) uploadInvoices(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Upload", err.Error())
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		httpx.RespondError(w, fmt.Errorf("%w: at least one invoice file is required", httpx.ErrValidation))
		return
	}

	var files []UploadedFile
	var openErrs []FileError
	for _, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			openErrs = append(openErrs, FileError{File: header.Filename, Reason: err.Error()})
			continue
		}
		defer f.Close()
		files = append(files, UploadedFile{Name: header.Filename, Reader: f})
	}

	summary, err := h.service.ParseBatch(r.Context(), files)
	if err != nil {
		h.logger.Error("parse invoice batch", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	summary.Failures = append(openErrs, summary.Failures...)

	batch := StagedBatch{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Summary:   summary,
	}
	if err := h.staging.Put(r.Context(), batch); err != nil {
		h.logger.Error("stage invoice batch", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, batch)
}

func (h *Handler) getBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.staging.Get(r.Context(), chi.URLParam(r, "batchID"))
	if errors.Is(err, ErrBatchNotFound) {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	if err != nil {
		h.logger.Error("load staged batch", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, batch)
}
