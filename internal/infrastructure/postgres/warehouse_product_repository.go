package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

var _ repository.WarehouseProductRepository = (*WarehouseProductRepo)(nil)

// WarehouseProductRepo implements WarehouseProductRepository on PostgreSQL.
type WarehouseProductRepo struct {
	q Querier
}

// NewWarehouseProductRepository builds the adapter. Pass a pool or a tx.
func NewWarehouseProductRepository(q Querier) *WarehouseProductRepo {
	return &WarehouseProductRepo{q: q}
}

const warehouseColumns = `id, product_id, supplier_id, sku, batch_number, quantity_in_stock,
	minimum_stock_level, maximum_stock_level, reorder_point, unit_price, created_at, updated_at`

// GetByID returns one record, nil when missing.
func (r *WarehouseProductRepo) GetByID(id string) (*entity.WarehouseProduct, error) {
	return r.scanOne(`SELECT `+warehouseColumns+` FROM warehouse_products WHERE id = $1`, id)
}

// GetByProduct returns the record for a product, nil when missing.
func (r *WarehouseProductRepo) GetByProduct(productID string) (*entity.WarehouseProduct, error) {
	return r.scanOne(`SELECT `+warehouseColumns+` FROM warehouse_products WHERE product_id = $1`, productID)
}

// GetByProductForUpdate returns the record and locks it. Missing records come
// back nil; approval treats that as insufficient stock.
func (r *WarehouseProductRepo) GetByProductForUpdate(productID string) (*entity.WarehouseProduct, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouse_products WHERE product_id = $1 FOR UPDATE`
	return r.scanOne(query, productID)
}

// Upsert inserts or replaces the record for its product.
func (r *WarehouseProductRepo) Upsert(wp *entity.WarehouseProduct) error {
	query := `
		INSERT INTO warehouse_products (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (product_id)
		DO UPDATE SET supplier_id = EXCLUDED.supplier_id,
		              sku = EXCLUDED.sku,
		              batch_number = EXCLUDED.batch_number,
		              quantity_in_stock = EXCLUDED.quantity_in_stock,
		              minimum_stock_level = EXCLUDED.minimum_stock_level,
		              maximum_stock_level = EXCLUDED.maximum_stock_level,
		              reorder_point = EXCLUDED.reorder_point,
		              unit_price = EXCLUDED.unit_price,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		wp.ID, wp.ProductID, wp.SupplierID, wp.SKU, wp.BatchNumber, wp.QuantityInStock,
		wp.MinimumStockLevel, wp.MaximumStockLevel, wp.ReorderPoint, wp.UnitPrice,
		wp.CreatedAt, wp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert warehouse product: %w", err)
	}
	return nil
}

// List returns records ordered by SKU.
func (r *WarehouseProductRepo) List(limit, offset int) ([]*entity.WarehouseProduct, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouse_products ORDER BY sku LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// ListBelowReorderPoint returns records whose quantity is at or below their
// reorder point.
func (r *WarehouseProductRepo) ListBelowReorderPoint() ([]*entity.WarehouseProduct, error) {
	query := `
		SELECT ` + warehouseColumns + ` FROM warehouse_products
		WHERE quantity_in_stock <= reorder_point ORDER BY sku`
	return r.scanMany(query)
}

func (r *WarehouseProductRepo) scanOne(query string, args ...any) (*entity.WarehouseProduct, error) {
	wp, err := scanWarehouseProduct(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse product: %w", err)
	}
	return wp, nil
}

func (r *WarehouseProductRepo) scanMany(query string, args ...any) ([]*entity.WarehouseProduct, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouse products: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseProduct
	for rows.Next() {
		wp, err := scanWarehouseProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse product: %w", err)
		}
		list = append(list, wp)
	}
	return list, rows.Err()
}

func scanWarehouseProduct(row pgx.Row) (*entity.WarehouseProduct, error) {
	var wp entity.WarehouseProduct
	err := row.Scan(
		&wp.ID, &wp.ProductID, &wp.SupplierID, &wp.SKU, &wp.BatchNumber, &wp.QuantityInStock,
		&wp.MinimumStockLevel, &wp.MaximumStockLevel, &wp.ReorderPoint, &wp.UnitPrice,
		&wp.CreatedAt, &wp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wp, nil
}
