package entity

import "time"

// RestockRequest statuses. Approval transfers stock immediately, so a
// successful approval lands on fulfilled; ship/receive only track logistics
// after the fact. Rejected and received are terminal.
const (
	RestockStatusPending   = "pending"
	RestockStatusFulfilled = "fulfilled"
	RestockStatusShipped   = "shipped"
	RestockStatusReceived  = "received"
	RestockStatusRejected  = "rejected"
)

// Request priorities, shared with transfer requests.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// RestockRequest asks to move stock from the central warehouse to a store.
// RequestNumber comes from a database sequence (RST-000042).
type RestockRequest struct {
	ID                string
	RequestNumber     string
	StoreID           string
	ProductID         string
	RequestedBy       string
	RequestedQuantity int64
	ApprovedQuantity  int64
	ShippedQuantity   int64
	ReceivedQuantity  int64
	Status            string
	Priority          string
	Reason            string
	Notes             string
	ReviewedBy        string
	ShippedBy         string
	ReceivedBy        string
	TrackingNumber    string
	Discrepancy       bool // received less than shipped
	RequestedAt       time.Time
	ReviewedAt        time.Time
	ShippedAt         time.Time
	ReceivedAt        time.Time
}

// CanReview reports whether the request still accepts an approve/reject
// decision. Every non-pending status is final for review purposes.
func (r *RestockRequest) CanReview() bool {
	return r.Status == RestockStatusPending
}

// CanShip reports whether the request can move to shipped.
func (r *RestockRequest) CanShip() bool {
	return r.Status == RestockStatusFulfilled
}

// CanReceive reports whether the request can move to received.
func (r *RestockRequest) CanReceive() bool {
	return r.Status == RestockStatusShipped
}
