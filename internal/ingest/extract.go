package ingest

import (
	"fmt"
)

// Document is the extracted content of one uploaded file. Exactly one of
// Lines (PDF path) or Table (CSV path) is populated.
type Document struct {
	// Lines holds trimmed non-empty text lines in page order. No layout
	// or column information survives PDF extraction.
	Lines []string
	// Table holds raw CSV cells. Rows may be ragged; the header row is
	// located later by content sniffing, never assumed to be row 0.
	Table [][]string
}

// IsTabular reports whether the document came from the CSV path.
func (d Document) IsTabular() bool {
	return d.Table != nil
}

func extractionError(stage string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExtraction, stage, err)
}
