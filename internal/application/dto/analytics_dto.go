package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductDTO one row of the most-restocked-products widget.
type TopProductDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ApprovedQty int64  `json:"approved_qty"`
	Requests    int    `json:"requests"`
}

// StoreStockDTO one per-store inventory snapshot.
type StoreStockDTO struct {
	StoreID       string          `json:"store_id"`
	StoreName     string          `json:"store_name"`
	TotalUnits    int64           `json:"total_units"`
	LowStockItems int             `json:"low_stock_items"`
	Valuation     decimal.Decimal `json:"valuation"`
}

// DashboardSummaryDTO head-manager dashboard payload.
type DashboardSummaryDTO struct {
	TodayRevenue     decimal.Decimal `json:"today_revenue"`
	TodayPayments    int             `json:"today_payments"`
	MonthRevenue     decimal.Decimal `json:"month_revenue"`
	MonthPayments    int             `json:"month_payments"`
	MonthOrderSpend  decimal.Decimal `json:"month_order_spend"`
	RestockByStatus  map[string]int  `json:"restock_by_status"`
	TransferByStatus map[string]int  `json:"transfer_by_status"`
	TopProducts      []TopProductDTO `json:"top_products"`
	Stores           []StoreStockDTO `json:"stores"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// NotificationResponse one in-app notification.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
