package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// PaymentRepository defines the port for Chapa transactions.
type PaymentRepository interface {
	Create(tx *entity.ChapaTransaction) error
	GetByTxRef(txRef string) (*entity.ChapaTransaction, error)
	UpdateStatus(txRef, status string) error
	List(limit, offset int) ([]*entity.ChapaTransaction, error)
}
