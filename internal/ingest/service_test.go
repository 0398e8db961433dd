package ingest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thrive-ops/thrive-ops/internal/catalog"
)

type staticCatalog struct {
	snap *catalog.Snapshot
}

func (c staticCatalog) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	return c.snap, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const invoiceCSV = `Invoice Number:,INV-2002
Invoice Date:,2024-03-06
Item,SKU#,Unit price,Quantity,Amount
Widget,AB-123,$5.00,3,$15.00
Mystery Item,XX-999,,2,$8.00
Subtotal,,,,$23.00
`

func TestParseFileCSV(t *testing.T) {
	service := NewService(discardLogger(), staticCatalog{snap: testSnapshot()})

	result, err := service.ParseFile("invoice.csv", strings.NewReader(invoiceCSV), testSnapshot())
	require.NoError(t, err)

	require.Equal(t, "INV-2002", result.Metadata.InvoiceNumber)
	require.Len(t, result.Items, 2)

	// Legacy mapping redirects "Widget" to its successor product.
	require.True(t, result.Items[0].Resolved)
	require.Equal(t, "Widget Pro", result.Items[0].Key)
	require.Equal(t, "CD-456", result.Items[0].SKU)

	require.False(t, result.Items[1].Resolved)
	require.Equal(t, "Mystery Item", result.Items[1].Key)
}

func TestParseFileUnsupportedExtension(t *testing.T) {
	service := NewService(discardLogger(), staticCatalog{snap: testSnapshot()})

	_, err := service.ParseFile("notes.txt", strings.NewReader("hello"), testSnapshot())
	require.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestParseBatch(t *testing.T) {
	service := NewService(discardLogger(), staticCatalog{snap: testSnapshot()})

	files := []UploadedFile{
		{Name: "good.csv", Reader: strings.NewReader(invoiceCSV)},
		{Name: "bad.xlsx", Reader: strings.NewReader("binary junk")},
	}
	summary, err := service.ParseBatch(context.Background(), files)
	require.NoError(t, err)

	require.Len(t, summary.Entries, 2)
	require.Equal(t, 5, summary.TotalQuantity)

	require.Len(t, summary.Failures, 1)
	require.Equal(t, "bad.xlsx", summary.Failures[0].File)
}

func TestParseBatchCorruptPDF(t *testing.T) {
	service := NewService(discardLogger(), staticCatalog{snap: testSnapshot()})

	summary, err := service.ParseBatch(context.Background(), []UploadedFile{
		{Name: "broken.pdf", Reader: strings.NewReader("not a pdf")},
	})
	require.NoError(t, err, "a corrupt file fails the file, not the batch")
	require.Empty(t, summary.Entries)
	require.Len(t, summary.Failures, 1)
}
