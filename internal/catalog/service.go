package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const snapshotCacheKey = "catalog:snapshot"

// SnapshotProduct is a catalog product with its pre-normalized name.
type SnapshotProduct struct {
	Product
	NormalizedName string `json:"normalized_name"`
}

// SnapshotLegacy is a legacy name entry with its pre-normalized name.
type SnapshotLegacy struct {
	LegacyNameEntry
	NormalizedName string `json:"normalized_name"`
}

// Snapshot is a point-in-time view of the catalog and the legacy name map,
// with every name normalized once up front so matching never re-normalizes.
type Snapshot struct {
	Products []SnapshotProduct `json:"products"`
	Legacy   []SnapshotLegacy  `json:"legacy"`

	bySKU  map[string]int
	byName map[string]int
}

// BuildSnapshot normalizes names and indexes the snapshot.
func BuildSnapshot(products []Product, legacy []LegacyNameEntry) *Snapshot {
	snap := &Snapshot{}
	for _, p := range products {
		snap.Products = append(snap.Products, SnapshotProduct{Product: p, NormalizedName: NormalizeName(p.Name)})
	}
	for _, e := range legacy {
		snap.Legacy = append(snap.Legacy, SnapshotLegacy{LegacyNameEntry: e, NormalizedName: NormalizeName(e.Name)})
	}
	snap.reindex()
	return snap
}

func (s *Snapshot) reindex() {
	s.bySKU = make(map[string]int, len(s.Products))
	s.byName = make(map[string]int, len(s.Products))
	for i, p := range s.Products {
		s.bySKU[strings.TrimSpace(p.SKU)] = i
		s.byName[strings.ToLower(p.NormalizedName)] = i
	}
}

// ProductBySKU looks up a product by its exact SKU.
func (s *Snapshot) ProductBySKU(sku string) (Product, bool) {
	i, ok := s.bySKU[strings.TrimSpace(sku)]
	if !ok {
		return Product{}, false
	}
	return s.Products[i].Product, true
}

// ProductByName looks up a product by normalized, case-insensitive name.
func (s *Snapshot) ProductByName(name string) (Product, bool) {
	i, ok := s.byName[strings.ToLower(NormalizeName(name))]
	if !ok {
		return Product{}, false
	}
	return s.Products[i].Product, true
}

// Service provides catalog access with a cached snapshot for the
// ingestion pipeline. Concurrent snapshot loads collapse into one.
type Service struct {
	repo  Repository
	cache *redis.Client
	ttl   time.Duration
	group singleflight.Group
}

// NewService builds the catalog service. cache may be nil, in which case
// every snapshot call hits the repository.
func NewService(repo Repository, cache *redis.Client, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl}
}

// List returns all catalog products.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.ListProducts(ctx)
}

// Get returns one product by SKU.
func (s *Service) Get(ctx context.Context, sku string) (Product, error) {
	return s.repo.Get(ctx, sku)
}

// Create inserts a product and invalidates the snapshot cache.
func (s *Service) Create(ctx context.Context, product Product) error {
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update rewrites a product and invalidates the snapshot cache.
func (s *Service) Update(ctx context.Context, sku string, product Product) error {
	if err := s.repo.Update(ctx, sku, product); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a product and invalidates the snapshot cache.
func (s *Service) Delete(ctx context.Context, sku string) error {
	if err := s.repo.Delete(ctx, sku); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Snapshot returns the current catalog snapshot, from cache when fresh.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	v, err, _ := s.group.Do(snapshotCacheKey, func() (any, error) {
		return s.loadSnapshot(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (s *Service) loadSnapshot(ctx context.Context) (*Snapshot, error) {
	if s.cache != nil {
		payload, err := s.cache.Get(ctx, snapshotCacheKey).Bytes()
		if err == nil {
			var snap Snapshot
			if err := json.Unmarshal(payload, &snap); err == nil {
				snap.reindex()
				return &snap, nil
			}
		} else if err != redis.Nil {
			return nil, fmt.Errorf("catalog: snapshot cache: %w", err)
		}
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	legacy, err := s.repo.ListLegacyNames(ctx)
	if err != nil {
		return nil, err
	}
	snap := BuildSnapshot(products, legacy)

	if s.cache != nil {
		if raw, err := json.Marshal(snap); err == nil {
			_ = s.cache.Set(ctx, snapshotCacheKey, raw, s.ttl).Err()
		}
	}
	return snap, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, snapshotCacheKey).Err()
	}
}
