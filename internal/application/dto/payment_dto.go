package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InitializePaymentRequest body for POST /api/v1/payments/initialize.
type InitializePaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency,omitempty"` // defaults to ETB
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     string          `json:"phone,omitempty"`
}

// InitializePaymentResponse returned after the gateway accepts the init.
type InitializePaymentResponse struct {
	TxRef       string `json:"tx_ref"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
}

// PaymentResponse public view of a recorded transaction.
type PaymentResponse struct {
	TxRef     string          `json:"tx_ref"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Email     string          `json:"email"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ChapaWebhookPayload the body Chapa posts to the webhook endpoint.
type ChapaWebhookPayload struct {
	TxRef  string `json:"tx_ref"`
	Status string `json:"status"`
	Event  string `json:"event,omitempty"`
}
