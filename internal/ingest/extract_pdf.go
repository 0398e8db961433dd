package ingest

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF pulls text out of a PDF invoice page by page, joining pages
// with newlines and returning trimmed non-empty lines. Scanned image-only
// PDFs produce no lines; that surfaces later as a parse with zero items,
// not as an error.
func ExtractPDF(r io.Reader) (Document, error) {
	buf := new(bytes.Buffer)
	size, err := buf.ReadFrom(r)
	if err != nil {
		return Document{}, extractionError("read pdf", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), size)
	if err != nil {
		return Document{}, extractionError("open pdf", err)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return Document{}, extractionError("extract page text", err)
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					text.WriteString(" ")
				}
				text.WriteString(word.S)
			}
			text.WriteString("\n")
		}
	}

	var lines []string
	for _, line := range strings.Split(text.String(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return Document{Lines: lines}, nil
}
