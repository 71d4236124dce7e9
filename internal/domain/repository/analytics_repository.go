package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult is a raw row for the most-restocked-products query.
type TopProductResult struct {
	ProductID   string
	ProductName string
	ApprovedQty int64
	Requests    int
}

// DailyRevenuePoint is one day of confirmed payment revenue.
type DailyRevenuePoint struct {
	Day      time.Time
	Revenue  decimal.Decimal
	Payments int
}

// StoreStockSummary is a per-store inventory snapshot for the dashboard.
type StoreStockSummary struct {
	StoreID       string
	StoreName     string
	TotalUnits    int64
	LowStockItems int
	Valuation     decimal.Decimal // sum(quantity * selling_price)
}

// AnalyticsRepository defines the read-only aggregate queries behind the
// dashboards and report exports. Implementations never modify data.
type AnalyticsRepository interface {
	// GetPaymentMetrics returns confirmed (success) payment revenue and count
	// in the period. COALESCEs to zero when the period is empty.
	GetPaymentMetrics(ctx context.Context, start, end time.Time) (revenue decimal.Decimal, count int, err error)

	// GetOrderSpend returns the total of delivered purchase orders and their
	// count in the period.
	GetOrderSpend(ctx context.Context, start, end time.Time) (spend decimal.Decimal, count int, err error)

	// GetRestockStatusCounts returns restock request counts keyed by status.
	GetRestockStatusCounts(ctx context.Context) (map[string]int, error)

	// GetTransferStatusCounts returns transfer request counts keyed by status.
	GetTransferStatusCounts(ctx context.Context) (map[string]int, error)

	// GetTopRestockedProducts returns the products with the highest approved
	// restock volume in the period.
	GetTopRestockedProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)

	// GetStoreStockSummaries returns one inventory snapshot per store.
	GetStoreStockSummaries(ctx context.Context) ([]StoreStockSummary, error)

	// GetDailyRevenue returns the per-day confirmed payment series for the
	// sales CSV export.
	GetDailyRevenue(ctx context.Context, start, end time.Time) ([]DailyRevenuePoint, error)
}
