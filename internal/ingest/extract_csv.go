package ingest

import (
	"encoding/csv"
	"io"
)

// ExtractCSV reads an invoice CSV export as a generic table. All cells
// stay strings; rows may have differing lengths because exports pad
// header banners and footers inconsistently.
func ExtractCSV(r io.Reader) (Document, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return Document{}, extractionError("read csv", err)
	}
	return Document{Table: rows}, nil
}
