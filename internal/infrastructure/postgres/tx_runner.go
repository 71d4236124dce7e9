package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ezm-trade/trade-api/internal/application/orders"
	"github.com/ezm-trade/trade-api/internal/application/requests"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

// Ensure the runners satisfy their application ports.
var _ requests.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*OrderTxRunner)(nil)

// TxRunner executes request-workflow callbacks inside one PostgreSQL
// transaction. The repositories handed to the callback are bound to the
// transaction, so row locks taken with the ForUpdate variants hold until
// commit or rollback.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repositories and
// commits, rolling back on any error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseProductRepository,
	restockRepo repository.RestockRequestRepository,
	transferRepo repository.TransferRequestRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	warehouseRepo := NewWarehouseProductRepository(tx)
	restockRepo := NewRestockRequestRepository(tx)
	transferRepo := NewTransferRequestRepository(tx)

	if err := fn(stockRepo, warehouseRepo, restockRepo, transferRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// OrderTxRunner executes purchase-order delivery callbacks inside one
// transaction (order row plus warehouse credits).
type OrderTxRunner struct {
	pool *pgxpool.Pool
}

// NewOrderTxRunner builds the runner on the pool.
func NewOrderTxRunner(pool *pgxpool.Pool) *OrderTxRunner {
	return &OrderTxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repositories and
// commits, rolling back on any error.
func (r *OrderTxRunner) Run(ctx context.Context, fn func(
	warehouseRepo repository.WarehouseProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewWarehouseProductRepository(tx), NewPurchaseOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
