package entity

import "time"

// Notification types.
const (
	NotificationRestock  = "restock_request"
	NotificationTransfer = "transfer_request"
	NotificationLowStock = "low_stock"
	NotificationOrder    = "purchase_order"
	NotificationPayment  = "payment"
)

// Notification is an in-app message for a user, written after workflow
// transitions and by the stock alert scanner.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
