package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implements PurchaseOrderRepository on PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository builds the adapter. Pass a pool or a tx.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, order_number, supplier_id, created_by, status, total_amount,
	expected_delivery_date, delivered_at, confirmed_by, created_at, updated_at`

// Create persists the order and its items, pulling the order number from the
// purchase_order_seq sequence.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error {
	ctx := context.Background()
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('purchase_order_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("next order number: %w", err)
	}
	order.OrderNumber = fmt.Sprintf("PO-%06d", seq)

	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderNumber, order.SupplierID, order.CreatedBy, order.Status, order.TotalAmount,
		nullTime(order.ExpectedDeliveryDate), nullTime(order.DeliveredAt), order.ConfirmedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_order_items (id, order_id, product_id, product_name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID returns one order, nil when missing.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.scanOne(`SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetByIDForUpdate returns the order and locks its row so delivery
// confirmation serializes with any concurrent decision.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.scanOne(`SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

// GetItems returns the order's lines.
func (r *PurchaseOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price
		FROM purchase_order_items WHERE order_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		var item entity.PurchaseOrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// Update persists the mutable fields of an order.
func (r *PurchaseOrderRepo) Update(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, total_amount = $3, expected_delivery_date = $4, delivered_at = $5,
		    confirmed_by = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.TotalAmount, nullTime(order.ExpectedDeliveryDate),
		nullTime(order.DeliveredAt), order.ConfirmedBy, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// List returns orders, newest first.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// ListBySupplier returns one supplier's orders, newest first.
func (r *PurchaseOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + orderColumns + ` FROM purchase_orders
		WHERE supplier_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, supplierID, limit, offset)
}

func (r *PurchaseOrderRepo) scanOne(query string, args ...any) (*entity.PurchaseOrder, error) {
	order, err := scanPurchaseOrder(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return order, nil
}

func (r *PurchaseOrderRepo) scanMany(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		order, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, order)
	}
	return list, rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var (
		order       entity.PurchaseOrder
		expectedAt  *time.Time
		deliveredAt *time.Time
	)
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.SupplierID, &order.CreatedBy, &order.Status,
		&order.TotalAmount, &expectedAt, &deliveredAt, &order.ConfirmedBy,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.ExpectedDeliveryDate = fromNullTime(expectedAt)
	order.DeliveredAt = fromNullTime(deliveredAt)
	return &order, nil
}
