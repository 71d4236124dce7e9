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

var _ repository.TransferRequestRepository = (*TransferRequestRepo)(nil)

// TransferRequestRepo implements TransferRequestRepository on PostgreSQL.
type TransferRequestRepo struct {
	q Querier
}

// NewTransferRequestRepository builds the adapter. Pass a pool or a tx.
func NewTransferRequestRepository(q Querier) *TransferRequestRepo {
	return &TransferRequestRepo{q: q}
}

const transferColumns = `id, request_number, product_id, from_store_id, to_store_id, requested_by,
	requested_quantity, approved_quantity, status, priority, reason, notes, reviewed_by,
	requested_at, reviewed_at`

// Create persists a new transfer, pulling the request number from the
// transfer_request_seq sequence.
func (r *TransferRequestRepo) Create(req *entity.StoreStockTransferRequest) error {
	ctx := context.Background()
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('transfer_request_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("next transfer number: %w", err)
	}
	req.RequestNumber = fmt.Sprintf("TRF-%06d", seq)

	query := `
		INSERT INTO transfer_requests (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.RequestNumber, req.ProductID, req.FromStoreID, req.ToStoreID, req.RequestedBy,
		req.RequestedQuantity, req.ApprovedQuantity, req.Status, req.Priority, req.Reason, req.Notes,
		req.ReviewedBy, req.RequestedAt, nullTime(req.ReviewedAt),
	)
	if err != nil {
		return fmt.Errorf("insert transfer request: %w", err)
	}
	return nil
}

// GetByID returns one transfer, nil when missing.
func (r *TransferRequestRepo) GetByID(id string) (*entity.StoreStockTransferRequest, error) {
	return r.scanOne(`SELECT `+transferColumns+` FROM transfer_requests WHERE id = $1`, id)
}

// GetByIDForUpdate returns the transfer and locks its row.
func (r *TransferRequestRepo) GetByIDForUpdate(id string) (*entity.StoreStockTransferRequest, error) {
	return r.scanOne(`SELECT `+transferColumns+` FROM transfer_requests WHERE id = $1 FOR UPDATE`, id)
}

// Update persists the mutable fields of a transfer.
func (r *TransferRequestRepo) Update(req *entity.StoreStockTransferRequest) error {
	query := `
		UPDATE transfer_requests
		SET approved_quantity = $2, status = $3, notes = $4, reviewed_by = $5, reviewed_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.ApprovedQuantity, req.Status, req.Notes, req.ReviewedBy, nullTime(req.ReviewedAt),
	)
	if err != nil {
		return fmt.Errorf("update transfer request: %w", err)
	}
	return nil
}

// ListByStore returns transfers touching the store (as source or destination),
// newest first.
func (r *TransferRequestRepo) ListByStore(storeID string, limit, offset int) ([]*entity.StoreStockTransferRequest, error) {
	query := `
		SELECT ` + transferColumns + ` FROM transfer_requests
		WHERE from_store_id = $1 OR to_store_id = $1
		ORDER BY requested_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, storeID, limit, offset)
}

// ListByStatus returns transfers holding the status, newest first.
func (r *TransferRequestRepo) ListByStatus(status string, limit, offset int) ([]*entity.StoreStockTransferRequest, error) {
	query := `
		SELECT ` + transferColumns + ` FROM transfer_requests
		WHERE status = $1 ORDER BY requested_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, status, limit, offset)
}

// List returns all transfers, newest first.
func (r *TransferRequestRepo) List(limit, offset int) ([]*entity.StoreStockTransferRequest, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_requests ORDER BY requested_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

func (r *TransferRequestRepo) scanOne(query string, args ...any) (*entity.StoreStockTransferRequest, error) {
	req, err := scanTransferRequest(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer request: %w", err)
	}
	return req, nil
}

func (r *TransferRequestRepo) scanMany(query string, args ...any) ([]*entity.StoreStockTransferRequest, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfer requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.StoreStockTransferRequest
	for rows.Next() {
		req, err := scanTransferRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func scanTransferRequest(row pgx.Row) (*entity.StoreStockTransferRequest, error) {
	var (
		req        entity.StoreStockTransferRequest
		reviewedAt *time.Time
	)
	err := row.Scan(
		&req.ID, &req.RequestNumber, &req.ProductID, &req.FromStoreID, &req.ToStoreID, &req.RequestedBy,
		&req.RequestedQuantity, &req.ApprovedQuantity, &req.Status, &req.Priority, &req.Reason, &req.Notes,
		&req.ReviewedBy, &req.RequestedAt, &reviewedAt,
	)
	if err != nil {
		return nil, err
	}
	req.ReviewedAt = fromNullTime(reviewedAt)
	return &req, nil
}
