package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItem one line of a purchase order being created.
type CreateOrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body for POST /api/v1/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID           string            `json:"supplier_id"`
	ExpectedDeliveryDate *time.Time        `json:"expected_delivery_date,omitempty"`
	Items                []CreateOrderItem `json:"items"`
}

// OrderItemResponse one line of a purchase order.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse public view of a purchase order.
type PurchaseOrderResponse struct {
	ID                   string              `json:"id"`
	OrderNumber          string              `json:"order_number"`
	SupplierID           string              `json:"supplier_id"`
	CreatedBy            string              `json:"created_by"`
	Status               string              `json:"status"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date,omitempty"`
	DeliveredAt          *time.Time          `json:"delivered_at,omitempty"`
	Items                []OrderItemResponse `json:"items,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
}
