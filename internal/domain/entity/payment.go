package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChapaTransaction statuses, mirroring the gateway's verification results.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// ChapaTransaction records one payment initialized against the Chapa
// gateway. TxRef is unique and is the correlation key for the webhook.
type ChapaTransaction struct {
	ID          string
	TxRef       string
	Amount      decimal.Decimal
	Currency    string // ETB unless stated otherwise
	Email       string
	FirstName   string
	LastName    string
	Phone       string
	Status      string
	CheckoutURL string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
