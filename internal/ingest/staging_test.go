package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStaging(t *testing.T) (*StagingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStagingStore(client, time.Hour), mr
}

func TestStagingRoundTrip(t *testing.T) {
	store, _ := newTestStaging(t)
	ctx := context.Background()

	batch := StagedBatch{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Summary: BatchSummary{
			Entries:       []InvoiceSummaryEntry{{Key: "Widget", SKU: "AB-123", Quantity: 3, InvoiceRefs: "INV-1"}},
			TotalQuantity: 3,
		},
	}
	require.NoError(t, store.Put(ctx, batch))

	got, err := store.Get(ctx, batch.ID)
	require.NoError(t, err)
	require.Equal(t, batch.ID, got.ID)
	require.Equal(t, batch.Summary.Entries, got.Summary.Entries)
	require.Equal(t, 3, got.Summary.TotalQuantity)
}

func TestStagingGetMissing(t *testing.T) {
	store, _ := newTestStaging(t)

	_, err := store.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrBatchNotFound)
}

func TestStagingExpiry(t *testing.T) {
	store, mr := newTestStaging(t)
	ctx := context.Background()

	batch := StagedBatch{ID: uuid.NewString(), CreatedAt: time.Now()}
	require.NoError(t, store.Put(ctx, batch))

	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, batch.ID)
	require.ErrorIs(t, err, ErrBatchNotFound)
}

func TestStagingDelete(t *testing.T) {
	store, _ := newTestStaging(t)
	ctx := context.Background()

	batch := StagedBatch{ID: uuid.NewString(), CreatedAt: time.Now()}
	require.NoError(t, store.Put(ctx, batch))
	require.NoError(t, store.Delete(ctx, batch.ID))

	_, err := store.Get(ctx, batch.ID)
	require.ErrorIs(t, err, ErrBatchNotFound)
}
