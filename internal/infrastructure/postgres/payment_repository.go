package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository on PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, tx_ref, amount, currency, email, first_name, last_name, phone,
	status, checkout_url, created_at, updated_at`

// Create persists a new transaction.
func (r *PaymentRepo) Create(tx *entity.ChapaTransaction) error {
	query := `
		INSERT INTO chapa_transactions (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.TxRef, tx.Amount, tx.Currency, tx.Email, tx.FirstName, tx.LastName, tx.Phone,
		tx.Status, tx.CheckoutURL, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByTxRef returns the transaction holding the reference, nil when missing.
func (r *PaymentRepo) GetByTxRef(txRef string) (*entity.ChapaTransaction, error) {
	query := `SELECT ` + paymentColumns + ` FROM chapa_transactions WHERE tx_ref = $1`
	var tx entity.ChapaTransaction
	err := r.q.QueryRow(context.Background(), query, txRef).Scan(
		&tx.ID, &tx.TxRef, &tx.Amount, &tx.Currency, &tx.Email, &tx.FirstName, &tx.LastName, &tx.Phone,
		&tx.Status, &tx.CheckoutURL, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// UpdateStatus sets the status of one transaction.
func (r *PaymentRepo) UpdateStatus(txRef, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE chapa_transactions SET status = $2, updated_at = now() WHERE tx_ref = $1`, txRef, status)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	return nil
}

// List returns transactions, newest first.
func (r *PaymentRepo) List(limit, offset int) ([]*entity.ChapaTransaction, error) {
	query := `SELECT ` + paymentColumns + ` FROM chapa_transactions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChapaTransaction
	for rows.Next() {
		var tx entity.ChapaTransaction
		if err := rows.Scan(&tx.ID, &tx.TxRef, &tx.Amount, &tx.Currency, &tx.Email, &tx.FirstName,
			&tx.LastName, &tx.Phone, &tx.Status, &tx.CheckoutURL, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}
