package entity

import "time"

// StoreStockTransferRequest statuses. Approval moves the stock and completes
// the request in one step; completed and rejected are terminal.
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
	TransferStatusRejected  = "rejected"
)

// StoreStockTransferRequest asks to move stock between two stores without
// touching the warehouse. FromStoreID currently holds the stock; ToStoreID is
// the requester's store. RequestNumber comes from a sequence (TRF-000017).
type StoreStockTransferRequest struct {
	ID                string
	RequestNumber     string
	ProductID         string
	FromStoreID       string
	ToStoreID         string
	RequestedBy       string
	RequestedQuantity int64
	ApprovedQuantity  int64
	Status            string
	Priority          string
	Reason            string
	Notes             string
	ReviewedBy        string
	RequestedAt       time.Time
	ReviewedAt        time.Time
}

// CanReview reports whether the transfer still accepts a decision.
func (t *StoreStockTransferRequest) CanReview() bool {
	return t.Status == TransferStatusPending
}
