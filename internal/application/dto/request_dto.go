package dto

import "time"

// CreateRestockRequest body for POST /api/v1/restock-requests.
// The store is taken from the caller's token, never from the body.
type CreateRestockRequest struct {
	ProductID         string `json:"product_id"`
	RequestedQuantity int64  `json:"requested_quantity"`
	Priority          string `json:"priority,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// ReviewRequest body for POST .../approve and .../reject|decline.
// ApprovedQuantity is ignored on reject; zero means "approve as requested".
type ReviewRequest struct {
	ApprovedQuantity int64  `json:"approved_quantity,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// ShipRequest body for POST /api/v1/restock-requests/:id/ship.
// Zero ShippedQuantity means "ship the approved quantity".
type ShipRequest struct {
	ShippedQuantity int64  `json:"shipped_quantity,omitempty"`
	TrackingNumber  string `json:"tracking_number,omitempty"`
}

// ReceiveRequest body for POST /api/v1/restock-requests/:id/receive.
// Zero ReceivedQuantity means "received in full".
type ReceiveRequest struct {
	ReceivedQuantity int64  `json:"received_quantity,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// RestockRequestResponse public view of a restock request.
type RestockRequestResponse struct {
	ID                string     `json:"id"`
	RequestNumber     string     `json:"request_number"`
	StoreID           string     `json:"store_id"`
	ProductID         string     `json:"product_id"`
	RequestedBy       string     `json:"requested_by"`
	RequestedQuantity int64      `json:"requested_quantity"`
	ApprovedQuantity  int64      `json:"approved_quantity,omitempty"`
	ShippedQuantity   int64      `json:"shipped_quantity,omitempty"`
	ReceivedQuantity  int64      `json:"received_quantity,omitempty"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	Reason            string     `json:"reason,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	ReviewedBy        string     `json:"reviewed_by,omitempty"`
	TrackingNumber    string     `json:"tracking_number,omitempty"`
	Discrepancy       bool       `json:"discrepancy,omitempty"`
	RequestedAt       time.Time  `json:"requested_at"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	ShippedAt         *time.Time `json:"shipped_at,omitempty"`
	ReceivedAt        *time.Time `json:"received_at,omitempty"`
}

// CreateTransferRequest body for POST /api/v1/transfer-requests.
// The destination store is the caller's own store from the token.
type CreateTransferRequest struct {
	ProductID         string `json:"product_id"`
	FromStoreID       string `json:"from_store_id"`
	RequestedQuantity int64  `json:"requested_quantity"`
	Priority          string `json:"priority,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// TransferRequestResponse public view of a transfer request.
type TransferRequestResponse struct {
	ID                string     `json:"id"`
	RequestNumber     string     `json:"request_number"`
	ProductID         string     `json:"product_id"`
	FromStoreID       string     `json:"from_store_id"`
	ToStoreID         string     `json:"to_store_id"`
	RequestedBy       string     `json:"requested_by"`
	RequestedQuantity int64      `json:"requested_quantity"`
	ApprovedQuantity  int64      `json:"approved_quantity,omitempty"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	Reason            string     `json:"reason,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	ReviewedBy        string     `json:"reviewed_by,omitempty"`
	RequestedAt       time.Time  `json:"requested_at"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
}
