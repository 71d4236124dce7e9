package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implements the read-only aggregate queries behind the
// dashboard and the exports.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository builds the adapter.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetPaymentMetrics returns confirmed payment revenue and count in the period.
func (r *AnalyticsRepo) GetPaymentMetrics(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM chapa_transactions
		WHERE status = $1 AND created_at BETWEEN $2 AND $3`
	var (
		revenue decimal.Decimal
		count   int
	)
	err := r.q.QueryRow(ctx, query, entity.PaymentStatusSuccess, start, end).Scan(&revenue, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("payment metrics: %w", err)
	}
	return revenue, count, nil
}

// GetOrderSpend returns the total of delivered purchase orders in the period.
func (r *AnalyticsRepo) GetOrderSpend(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM purchase_orders
		WHERE status = $1 AND delivered_at BETWEEN $2 AND $3`
	var (
		spend decimal.Decimal
		count int
	)
	err := r.q.QueryRow(ctx, query, entity.OrderStatusDelivered, start, end).Scan(&spend, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("order spend: %w", err)
	}
	return spend, count, nil
}

// GetRestockStatusCounts returns restock request counts keyed by status.
func (r *AnalyticsRepo) GetRestockStatusCounts(ctx context.Context) (map[string]int, error) {
	return r.statusCounts(ctx, `SELECT status, COUNT(*) FROM restock_requests GROUP BY status`)
}

// GetTransferStatusCounts returns transfer request counts keyed by status.
func (r *AnalyticsRepo) GetTransferStatusCounts(ctx context.Context) (map[string]int, error) {
	return r.statusCounts(ctx, `SELECT status, COUNT(*) FROM transfer_requests GROUP BY status`)
}

// GetTopRestockedProducts returns the products with the highest approved
// restock volume in the period.
func (r *AnalyticsRepo) GetTopRestockedProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT rr.product_id, p.name, SUM(rr.approved_quantity), COUNT(*)
		FROM restock_requests rr
		JOIN products p ON p.id = rr.product_id
		WHERE rr.status IN ($1, $2, $3) AND rr.reviewed_at BETWEEN $4 AND $5
		GROUP BY rr.product_id, p.name
		ORDER BY SUM(rr.approved_quantity) DESC
		LIMIT $6`
	rows, err := r.q.Query(ctx, query,
		entity.RestockStatusFulfilled, entity.RestockStatusShipped, entity.RestockStatusReceived,
		start, end, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top restocked products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.ApprovedQty, &row.Requests); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetStoreStockSummaries returns one inventory snapshot per store.
func (r *AnalyticsRepo) GetStoreStockSummaries(ctx context.Context) ([]repository.StoreStockSummary, error) {
	query := `
		SELECT st.id, st.name,
		       COALESCE(SUM(s.quantity), 0),
		       COUNT(*) FILTER (WHERE s.quantity <= s.low_stock_threshold),
		       COALESCE(SUM(s.quantity * s.selling_price), 0)
		FROM stores st
		LEFT JOIN stock s ON s.store_id = st.id
		GROUP BY st.id, st.name
		ORDER BY st.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store stock summaries: %w", err)
	}
	defer rows.Close()
	var list []repository.StoreStockSummary
	for rows.Next() {
		var row repository.StoreStockSummary
		if err := rows.Scan(&row.StoreID, &row.StoreName, &row.TotalUnits, &row.LowStockItems, &row.Valuation); err != nil {
			return nil, fmt.Errorf("scan store summary: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetDailyRevenue returns the per-day confirmed payment series.
func (r *AnalyticsRepo) GetDailyRevenue(ctx context.Context, start, end time.Time) ([]repository.DailyRevenuePoint, error) {
	query := `
		SELECT date_trunc('day', created_at) AS day, COALESCE(SUM(amount), 0), COUNT(*)
		FROM chapa_transactions
		WHERE status = $1 AND created_at BETWEEN $2 AND $3
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, entity.PaymentStatusSuccess, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily revenue: %w", err)
	}
	defer rows.Close()
	var list []repository.DailyRevenuePoint
	for rows.Next() {
		var point repository.DailyRevenuePoint
		if err := rows.Scan(&point.Day, &point.Revenue, &point.Payments); err != nil {
			return nil, fmt.Errorf("scan revenue point: %w", err)
		}
		list = append(list, point)
	}
	return list, rows.Err()
}

func (r *AnalyticsRepo) statusCounts(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
