package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the key-value view of the persisted ledger: read all rows,
// read one row, upsert by SKU. Anything richer belongs to the surrounding
// application.
type Repository interface {
	ListAll(ctx context.Context) ([]InventoryRecord, error)
	GetBySKU(ctx context.Context, sku string) (InventoryRecord, error)
	GetByName(ctx context.Context, itemName string) (InventoryRecord, error)
	Upsert(ctx context.Context, rec InventoryRecord) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed ledger repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const recordColumns = `sku, item_name, stock_bought, stock_left, status,
	COALESCE(last_updated_from_invoice, ''), COALESCE(invoice_date, ''),
	COALESCE(due_date, ''), COALESCE(image_url, '')`

func scanRecord(row pgx.Row) (InventoryRecord, error) {
	var rec InventoryRecord
	err := row.Scan(&rec.SKU, &rec.ItemName, &rec.StockBought, &rec.StockLeft,
		&rec.Status, &rec.LastInvoice, &rec.InvoiceDate, &rec.DueDate, &rec.ImageURL)
	return rec, err
}

func (r *repository) ListAll(ctx context.Context) ([]InventoryRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT `+recordColumns+` FROM inventory ORDER BY item_name`)
	if err != nil {
		return nil, fmt.Errorf("ledger: list inventory: %w", err)
	}
	defer rows.Close()

	var records []InventoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("ledger: scan inventory: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *repository) GetBySKU(ctx context.Context, sku string) (InventoryRecord, error) {
	rec, err := scanRecord(r.db.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM inventory WHERE sku = $1`, sku))
	if errors.Is(err, pgx.ErrNoRows) {
		return InventoryRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return InventoryRecord{}, fmt.Errorf("ledger: get by sku: %w", err)
	}
	return rec, nil
}

func (r *repository) GetByName(ctx context.Context, itemName string) (InventoryRecord, error) {
	rec, err := scanRecord(r.db.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM inventory WHERE item_name = $1 LIMIT 1`, itemName))
	if errors.Is(err, pgx.ErrNoRows) {
		return InventoryRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return InventoryRecord{}, fmt.Errorf("ledger: get by name: %w", err)
	}
	return rec, nil
}

func (r *repository) Upsert(ctx context.Context, rec InventoryRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inventory (sku, item_name, stock_bought, stock_left, status,
			last_updated_from_invoice, invoice_date, due_date, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (sku) DO UPDATE SET
			item_name = EXCLUDED.item_name,
			stock_bought = EXCLUDED.stock_bought,
			stock_left = EXCLUDED.stock_left,
			status = EXCLUDED.status,
			last_updated_from_invoice = EXCLUDED.last_updated_from_invoice,
			invoice_date = EXCLUDED.invoice_date,
			due_date = EXCLUDED.due_date,
			image_url = EXCLUDED.image_url`,
		rec.SKU, rec.ItemName, rec.StockBought, rec.StockLeft, rec.Status,
		rec.LastInvoice, rec.InvoiceDate, rec.DueDate, rec.ImageURL)
	if err != nil {
		return fmt.Errorf("ledger: upsert %s: %w", rec.SKU, err)
	}
	return nil
}
