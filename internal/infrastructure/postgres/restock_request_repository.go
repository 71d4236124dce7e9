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

var _ repository.RestockRequestRepository = (*RestockRequestRepo)(nil)

// RestockRequestRepo implements RestockRequestRepository on PostgreSQL.
type RestockRequestRepo struct {
	q Querier
}

// NewRestockRequestRepository builds the adapter. Pass a pool or a tx.
func NewRestockRequestRepository(q Querier) *RestockRequestRepo {
	return &RestockRequestRepo{q: q}
}

const restockColumns = `id, request_number, store_id, product_id, requested_by, requested_quantity,
	approved_quantity, shipped_quantity, received_quantity, status, priority, reason, notes,
	reviewed_by, shipped_by, received_by, tracking_number, discrepancy,
	requested_at, reviewed_at, shipped_at, received_at`

// Create persists a new request, pulling the request number from the
// restock_request_seq sequence so concurrent writers never collide.
func (r *RestockRequestRepo) Create(req *entity.RestockRequest) error {
	ctx := context.Background()
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('restock_request_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("next restock number: %w", err)
	}
	req.RequestNumber = fmt.Sprintf("RST-%06d", seq)

	query := `
		INSERT INTO restock_requests (` + restockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.RequestNumber, req.StoreID, req.ProductID, req.RequestedBy, req.RequestedQuantity,
		req.ApprovedQuantity, req.ShippedQuantity, req.ReceivedQuantity, req.Status, req.Priority,
		req.Reason, req.Notes, req.ReviewedBy, req.ShippedBy, req.ReceivedBy, req.TrackingNumber,
		req.Discrepancy, req.RequestedAt,
		nullTime(req.ReviewedAt), nullTime(req.ShippedAt), nullTime(req.ReceivedAt),
	)
	if err != nil {
		return fmt.Errorf("insert restock request: %w", err)
	}
	return nil
}

// GetByID returns one request, nil when missing.
func (r *RestockRequestRepo) GetByID(id string) (*entity.RestockRequest, error) {
	return r.scanOne(`SELECT `+restockColumns+` FROM restock_requests WHERE id = $1`, id)
}

// GetByIDForUpdate returns the request and locks its row so concurrent review
// decisions serialize.
func (r *RestockRequestRepo) GetByIDForUpdate(id string) (*entity.RestockRequest, error) {
	return r.scanOne(`SELECT `+restockColumns+` FROM restock_requests WHERE id = $1 FOR UPDATE`, id)
}

// Update persists the mutable fields of a request.
func (r *RestockRequestRepo) Update(req *entity.RestockRequest) error {
	query := `
		UPDATE restock_requests
		SET approved_quantity = $2, shipped_quantity = $3, received_quantity = $4, status = $5,
		    notes = $6, reviewed_by = $7, shipped_by = $8, received_by = $9, tracking_number = $10,
		    discrepancy = $11, reviewed_at = $12, shipped_at = $13, received_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.ApprovedQuantity, req.ShippedQuantity, req.ReceivedQuantity, req.Status,
		req.Notes, req.ReviewedBy, req.ShippedBy, req.ReceivedBy, req.TrackingNumber,
		req.Discrepancy, nullTime(req.ReviewedAt), nullTime(req.ShippedAt), nullTime(req.ReceivedAt),
	)
	if err != nil {
		return fmt.Errorf("update restock request: %w", err)
	}
	return nil
}

// ListByStore returns a store's requests, newest first.
func (r *RestockRequestRepo) ListByStore(storeID string, limit, offset int) ([]*entity.RestockRequest, error) {
	query := `
		SELECT ` + restockColumns + ` FROM restock_requests
		WHERE store_id = $1 ORDER BY requested_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, storeID, limit, offset)
}

// ListByStatus returns requests holding the status, newest first.
func (r *RestockRequestRepo) ListByStatus(status string, limit, offset int) ([]*entity.RestockRequest, error) {
	query := `
		SELECT ` + restockColumns + ` FROM restock_requests
		WHERE status = $1 ORDER BY requested_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, status, limit, offset)
}

// List returns all requests, newest first.
func (r *RestockRequestRepo) List(limit, offset int) ([]*entity.RestockRequest, error) {
	query := `SELECT ` + restockColumns + ` FROM restock_requests ORDER BY requested_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

func (r *RestockRequestRepo) scanOne(query string, args ...any) (*entity.RestockRequest, error) {
	req, err := scanRestockRequest(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restock request: %w", err)
	}
	return req, nil
}

func (r *RestockRequestRepo) scanMany(query string, args ...any) ([]*entity.RestockRequest, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list restock requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.RestockRequest
	for rows.Next() {
		req, err := scanRestockRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restock request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func scanRestockRequest(row pgx.Row) (*entity.RestockRequest, error) {
	var (
		req        entity.RestockRequest
		reviewedAt *time.Time
		shippedAt  *time.Time
		receivedAt *time.Time
	)
	err := row.Scan(
		&req.ID, &req.RequestNumber, &req.StoreID, &req.ProductID, &req.RequestedBy, &req.RequestedQuantity,
		&req.ApprovedQuantity, &req.ShippedQuantity, &req.ReceivedQuantity, &req.Status, &req.Priority,
		&req.Reason, &req.Notes, &req.ReviewedBy, &req.ShippedBy, &req.ReceivedBy, &req.TrackingNumber,
		&req.Discrepancy, &req.RequestedAt, &reviewedAt, &shippedAt, &receivedAt,
	)
	if err != nil {
		return nil, err
	}
	req.ReviewedAt = fromNullTime(reviewedAt)
	req.ShippedAt = fromNullTime(shippedAt)
	req.ReceivedAt = fromNullTime(receivedAt)
	return &req, nil
}
