package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implements SupplierRepository on PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository builds the adapter.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persists a new supplier.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, email, phone, address, contact_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.Email, supplier.Phone, supplier.Address,
		supplier.ContactName, supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID returns one supplier, nil when missing.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `
		SELECT id, name, email, phone, address, contact_name, created_at, updated_at
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.ContactName, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List returns suppliers ordered by name.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT id, name, email, phone, address, contact_name, created_at, updated_at
		FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.ContactName, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

const supplierProductColumns = `id, supplier_id, product_name, description, unit_price, stock_quantity, available, created_at, updated_at`

// CreateProduct adds an entry to a supplier's catalog.
func (r *SupplierRepo) CreateProduct(sp *entity.SupplierProduct) error {
	query := `
		INSERT INTO supplier_products (` + supplierProductColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sp.ID, sp.SupplierID, sp.ProductName, sp.Description, sp.UnitPrice,
		sp.StockQuantity, sp.Available, sp.CreatedAt, sp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier product: %w", err)
	}
	return nil
}

// ListProducts returns a supplier's catalog ordered by product name.
func (r *SupplierRepo) ListProducts(supplierID string) ([]*entity.SupplierProduct, error) {
	query := `
		SELECT ` + supplierProductColumns + ` FROM supplier_products
		WHERE supplier_id = $1 ORDER BY product_name`
	return r.scanProducts(query, supplierID)
}

// ListProductsAtOrBelow returns catalog entries with stock_quantity at or
// below threshold, across all suppliers when supplierID is empty.
func (r *SupplierRepo) ListProductsAtOrBelow(supplierID string, threshold int64) ([]*entity.SupplierProduct, error) {
	if supplierID != "" {
		query := `
			SELECT ` + supplierProductColumns + ` FROM supplier_products
			WHERE supplier_id = $1 AND stock_quantity <= $2
			ORDER BY supplier_id, stock_quantity`
		return r.scanProducts(query, supplierID, threshold)
	}
	query := `
		SELECT ` + supplierProductColumns + ` FROM supplier_products
		WHERE stock_quantity <= $1
		ORDER BY supplier_id, stock_quantity`
	return r.scanProducts(query, threshold)
}

// UpdateProductQuantity sets the reported quantity of one catalog entry.
func (r *SupplierRepo) UpdateProductQuantity(id string, quantity int64) error {
	query := `UPDATE supplier_products SET stock_quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update supplier product quantity: %w", err)
	}
	return nil
}

func (r *SupplierRepo) scanProducts(query string, args ...any) ([]*entity.SupplierProduct, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplier products: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierProduct
	for rows.Next() {
		var sp entity.SupplierProduct
		if err := rows.Scan(&sp.ID, &sp.SupplierID, &sp.ProductName, &sp.Description, &sp.UnitPrice,
			&sp.StockQuantity, &sp.Available, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier product: %w", err)
		}
		list = append(list, &sp)
	}
	return list, rows.Err()
}
