package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/thrive-ops/thrive-ops/internal/catalog"
)

// CatalogSource supplies the catalog snapshot the resolver matches against.
type CatalogSource interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// UploadedFile is one file of an upload batch.
type UploadedFile struct {
	Name   string
	Reader io.Reader
}

// Service runs the extraction, parsing and resolution pipeline.
type Service struct {
	logger  *slog.Logger
	catalog CatalogSource
}

// NewService builds the ingest service.
func NewService(logger *slog.Logger, catalog CatalogSource) *Service {
	return &Service{logger: logger, catalog: catalog}
}

// ParseFile extracts, parses and resolves one invoice file against an
// already-loaded catalog snapshot.
func (s *Service) ParseFile(name string, r io.Reader, snap *catalog.Snapshot) (FileResult, error) {
	var (
		doc Document
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		doc, err = ExtractPDF(r)
	case ".csv":
		doc, err = ExtractCSV(r)
	default:
		return FileResult{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}
	if err != nil {
		return FileResult{}, err
	}

	var (
		meta InvoiceMetadata
		raws []RawLineItem
	)
	if doc.IsTabular() {
		meta, raws = parseCSVTable(doc.Table)
	} else {
		meta, raws = parsePDFLines(doc.Lines)
	}

	result := FileResult{FileName: name, Metadata: meta}
	for _, raw := range raws {
		result.Items = append(result.Items, Resolve(raw, snap))
	}
	return result, nil
}

// ParseBatch processes every file of one upload batch and aggregates the
// outcome. A file that fails extraction is reported and excluded; the
// remaining files still contribute to the summary.
func (s *Service) ParseBatch(ctx context.Context, files []UploadedFile) (BatchSummary, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("ingest: load catalog snapshot: %w", err)
	}

	var (
		results  []FileResult
		failures []FileError
	)
	for _, file := range files {
		result, err := s.ParseFile(file.Name, file.Reader, snap)
		if err != nil {
			s.logger.Warn("invoice file excluded from batch",
				slog.String("file", file.Name), slog.Any("error", err))
			failures = append(failures, FileError{File: file.Name, Reason: err.Error()})
			continue
		}
		results = append(results, result)
	}

	summary := Aggregate(results)
	summary.Failures = failures
	return summary, nil
}
