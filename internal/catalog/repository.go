package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thrive-ops/thrive-ops/internal/platform/httpx"
)

// Repository reads and writes the product catalog and the legacy name map.
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, sku string) (Product, error)
	Create(ctx context.Context, product Product) error
	Update(ctx context.Context, sku string, product Product) error
	Delete(ctx context.Context, sku string) error
	ListLegacyNames(ctx context.Context) ([]LegacyNameEntry, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed catalog repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT sku, name, price, category, status, COALESCE(image_url, '') FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.SKU, &p.Name, &p.Price, &p.Category, &p.Status, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("catalog: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Get(ctx context.Context, sku string) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx,
		`SELECT sku, name, price, category, status, COALESCE(image_url, '') FROM products WHERE sku = $1`, sku,
	).Scan(&p.SKU, &p.Name, &p.Price, &p.Category, &p.Status, &p.ImageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("catalog: get product: %w", err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, product Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (sku, name, price, category, status, image_url) VALUES ($1, $2, $3, $4, $5, $6)`,
		product.SKU, product.Name, product.Price, product.Category, product.Status, product.ImageURL)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("catalog: create product: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, sku string, product Product) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET name = $1, price = $2, category = $3, status = $4, image_url = $5 WHERE sku = $6`,
		product.Name, product.Price, product.Category, product.Status, product.ImageURL, sku)
	if err != nil {
		return fmt.Errorf("catalog: update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, sku string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE sku = $1`, sku)
	if err != nil {
		return fmt.Errorf("catalog: delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListLegacyNames returns the legacy name map. A missing table is a valid
// "no legacy mappings" state.
func (r *repository) ListLegacyNames(ctx context.Context) ([]LegacyNameEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT name, sku FROM legacy_names ORDER BY name`)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42P01" { // undefined_table
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: list legacy names: %w", err)
	}
	defer rows.Close()

	var entries []LegacyNameEntry
	for rows.Next() {
		var e LegacyNameEntry
		if err := rows.Scan(&e.Name, &e.SKU); err != nil {
			return nil, fmt.Errorf("catalog: scan legacy name: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
