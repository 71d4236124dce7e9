package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implements StockRepository on PostgreSQL (usable with pool or tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository builds the adapter. Pass a pool or a tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get returns the stock row for (product, store). Missing rows come back as a
// zero-quantity value so callers can treat absence as empty.
func (r *StockRepo) Get(productID, storeID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, store_id, quantity, low_stock_threshold, selling_price, updated_at
		FROM stock WHERE product_id = $1 AND store_id = $2`
	return r.scanOne(query, productID, storeID)
}

// GetForUpdate returns the row and locks it (SELECT FOR UPDATE). Only
// meaningful inside a transaction.
func (r *StockRepo) GetForUpdate(productID, storeID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, store_id, quantity, low_stock_threshold, selling_price, updated_at
		FROM stock WHERE product_id = $1 AND store_id = $2
		FOR UPDATE`
	return r.scanOne(query, productID, storeID)
}

// Upsert inserts or replaces the row for (product, store).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, store_id, quantity, low_stock_threshold, selling_price, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              low_stock_threshold = EXCLUDED.low_stock_threshold,
		              selling_price = EXCLUDED.selling_price,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.StoreID, stock.Quantity, stock.LowStockThreshold, stock.SellingPrice,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByStore returns the store's rows ordered by product.
func (r *StockRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, store_id, quantity, low_stock_threshold, selling_price, updated_at
		FROM stock WHERE store_id = $1 ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.StoreID, &s.Quantity, &s.LowStockThreshold, &s.SellingPrice, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListAvailableElsewhere lists products held with positive quantity at stores
// other than excludeStoreID, joined to their names for the transfer dropdown.
func (r *StockRepo) ListAvailableElsewhere(excludeStoreID string) ([]repository.StockAvailability, error) {
	query := `
		SELECT s.product_id, p.name, s.store_id, st.name, s.quantity
		FROM stock s
		JOIN products p ON p.id = s.product_id
		JOIN stores st ON st.id = s.store_id
		WHERE s.store_id <> $1 AND s.quantity > 0
		ORDER BY p.name, st.name`
	rows, err := r.q.Query(context.Background(), query, excludeStoreID)
	if err != nil {
		return nil, fmt.Errorf("list available stock: %w", err)
	}
	defer rows.Close()
	var list []repository.StockAvailability
	for rows.Next() {
		var a repository.StockAvailability
		if err := rows.Scan(&a.ProductID, &a.ProductName, &a.StoreID, &a.StoreName, &a.Quantity); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *StockRepo) scanOne(query string, args ...any) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ProductID, &s.StoreID, &s.Quantity, &s.LowStockThreshold, &s.SellingPrice, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: args[0].(string), StoreID: args[1].(string)}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}
