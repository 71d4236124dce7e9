// Package analytics holds the read-only use cases behind the head-manager
// dashboard and the report exports.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // rows in the most-restocked widget

// DashboardUseCase builds the financial and workflow summary for today and
// the current month.
//
// Data source: AnalyticsRepository (read-only queries). It never touches the
// workflow tables directly; everything goes through the repository.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary assembles the DashboardSummaryDTO.
//
// The aggregate queries are independent, so they run in parallel:
//  1. GetPaymentMetrics(today) and GetPaymentMetrics(month)
//  2. GetOrderSpend(month)
//  3. GetRestockStatusCounts / GetTransferStatusCounts
//  4. GetTopRestockedProducts(month, top 5)
//  5. GetStoreStockSummaries
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type metricsResult struct {
		revenue decimal.Decimal
		count   int
		err     error
	}
	type countsResult struct {
		counts map[string]int
		err    error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type storesResult struct {
		rows []repository.StoreStockSummary
		err  error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	spendCh := make(chan metricsResult, 1)
	restockCh := make(chan countsResult, 1)
	transferCh := make(chan countsResult, 1)
	topCh := make(chan topResult, 1)
	storesCh := make(chan storesResult, 1)

	go func() {
		rev, count, err := uc.analyticsRepo.GetPaymentMetrics(ctx, todayStart, todayEnd)
		todayCh <- metricsResult{rev, count, err}
	}()
	go func() {
		rev, count, err := uc.analyticsRepo.GetPaymentMetrics(ctx, monthStart, monthEnd)
		monthCh <- metricsResult{rev, count, err}
	}()
	go func() {
		spend, count, err := uc.analyticsRepo.GetOrderSpend(ctx, monthStart, monthEnd)
		spendCh <- metricsResult{spend, count, err}
	}()
	go func() {
		counts, err := uc.analyticsRepo.GetRestockStatusCounts(ctx)
		restockCh <- countsResult{counts, err}
	}()
	go func() {
		counts, err := uc.analyticsRepo.GetTransferStatusCounts(ctx)
		transferCh <- countsResult{counts, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopRestockedProducts(ctx, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetStoreStockSummaries(ctx)
		storesCh <- storesResult{rows, err}
	}()

	today := <-todayCh
	month := <-monthCh
	spend := <-spendCh
	restock := <-restockCh
	transfer := <-transferCh
	top := <-topCh
	stores := <-storesCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: today's payments: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: month payments: %w", month.err)
	}
	if spend.err != nil {
		return nil, fmt.Errorf("dashboard: order spend: %w", spend.err)
	}
	if restock.err != nil {
		return nil, fmt.Errorf("dashboard: restock counts: %w", restock.err)
	}
	if transfer.err != nil {
		return nil, fmt.Errorf("dashboard: transfer counts: %w", transfer.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top products: %w", top.err)
	}
	if stores.err != nil {
		return nil, fmt.Errorf("dashboard: store summaries: %w", stores.err)
	}

	summary := &dto.DashboardSummaryDTO{
		TodayRevenue:     today.revenue.Round(2),
		TodayPayments:    today.count,
		MonthRevenue:     month.revenue.Round(2),
		MonthPayments:    month.count,
		MonthOrderSpend:  spend.revenue.Round(2),
		RestockByStatus:  restock.counts,
		TransferByStatus: transfer.counts,
		GeneratedAt:      now,
	}
	for _, row := range top.rows {
		summary.TopProducts = append(summary.TopProducts, dto.TopProductDTO{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			ApprovedQty: row.ApprovedQty,
			Requests:    row.Requests,
		})
	}
	for _, row := range stores.rows {
		summary.Stores = append(summary.Stores, dto.StoreStockDTO{
			StoreID:       row.StoreID,
			StoreName:     row.StoreName,
			TotalUnits:    row.TotalUnits,
			LowStockItems: row.LowStockItems,
			Valuation:     row.Valuation.Round(2),
		})
	}
	return summary, nil
}
