package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const batchKeyPrefix = "ingest:batch:"

// ErrBatchNotFound indicates a staged batch that expired or never existed.
var ErrBatchNotFound = errors.New("ingest: batch not found or expired")

// StagedBatch is a parsed upload batch awaiting operator confirmation.
// Staging it explicitly (instead of holding it in ambient session state)
// keeps the pipeline functions pure given their inputs.
type StagedBatch struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Summary   BatchSummary `json:"summary"`
}

// StagingStore holds parsed batches in Redis between parse and commit.
type StagingStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStagingStore builds the staging store.
func NewStagingStore(client *redis.Client, ttl time.Duration) *StagingStore {
	return &StagingStore{client: client, ttl: ttl}
}

// Put stages a batch under its ID with the configured TTL.
func (s *StagingStore) Put(ctx context.Context, batch StagedBatch) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("ingest: marshal batch: %w", err)
	}
	if err := s.client.Set(ctx, batchKeyPrefix+batch.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("ingest: stage batch: %w", err)
	}
	return nil
}

// Get loads a staged batch by ID.
func (s *StagingStore) Get(ctx context.Context, id string) (StagedBatch, error) {
	payload, err := s.client.Get(ctx, batchKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return StagedBatch{}, ErrBatchNotFound
	}
	if err != nil {
		return StagedBatch{}, fmt.Errorf("ingest: load batch: %w", err)
	}
	var batch StagedBatch
	if err := json.Unmarshal(payload, &batch); err != nil {
		return StagedBatch{}, fmt.Errorf("ingest: unmarshal batch: %w", err)
	}
	return batch, nil
}

// Delete removes a staged batch, typically right after commit.
func (s *StagingStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, batchKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("ingest: delete batch: %w", err)
	}
	return nil
}
