package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// PurchaseOrder is an order placed with a supplier to replenish the
// warehouse. Delivery confirmation feeds WarehouseProduct quantities.
type PurchaseOrder struct {
	ID                   string
	OrderNumber          string // PO-000031, from a sequence
	SupplierID           string
	CreatedBy            string
	Status               string
	TotalAmount          decimal.Decimal
	ExpectedDeliveryDate time.Time
	DeliveredAt          time.Time
	ConfirmedBy          string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PurchaseOrderItem is one line of a purchase order.
type PurchaseOrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// LineTotal returns quantity * unit price.
func (i *PurchaseOrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
