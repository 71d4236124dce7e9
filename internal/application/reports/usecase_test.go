package reports

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezm-trade/trade-api/internal/application/analytics"
	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

type fakeAnalyticsRepo struct {
	daily []repository.DailyRevenuePoint
}

func (f *fakeAnalyticsRepo) GetPaymentMetrics(context.Context, time.Time, time.Time) (decimal.Decimal, int, error) {
	return decimal.Zero, 0, nil
}

func (f *fakeAnalyticsRepo) GetOrderSpend(context.Context, time.Time, time.Time) (decimal.Decimal, int, error) {
	return decimal.Zero, 0, nil
}

func (f *fakeAnalyticsRepo) GetRestockStatusCounts(context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

func (f *fakeAnalyticsRepo) GetTransferStatusCounts(context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

func (f *fakeAnalyticsRepo) GetTopRestockedProducts(context.Context, time.Time, time.Time, int) ([]repository.TopProductResult, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) GetStoreStockSummaries(context.Context) ([]repository.StoreStockSummary, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) GetDailyRevenue(context.Context, time.Time, time.Time) ([]repository.DailyRevenuePoint, error) {
	return f.daily, nil
}

type fakePDF struct {
	got *dto.DashboardSummaryDTO
}

func (f *fakePDF) GenerateFinancialReport(_ context.Context, summary *dto.DashboardSummaryDTO) ([]byte, error) {
	f.got = summary
	return []byte("%PDF-1.7 fake"), nil
}

func TestFinancialReportPDF(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	pdf := &fakePDF{}
	uc := NewUseCase(analytics.NewDashboardUseCase(repo), repo, pdf)

	doc, err := uc.FinancialReportPDF(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), "%PDF"))
	require.NotNil(t, pdf.got, "the generator receives the freshly built summary")
}

func TestSalesCSV(t *testing.T) {
	day1 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	repo := &fakeAnalyticsRepo{daily: []repository.DailyRevenuePoint{
		{Day: day1, Revenue: decimal.NewFromInt(1250000), Payments: 14},
		{Day: day2, Revenue: decimal.NewFromFloat(980.5), Payments: 2},
	}}
	uc := NewUseCase(analytics.NewDashboardUseCase(repo), repo, &fakePDF{})

	out, err := uc.SalesCSV(context.Background(), day1, day2)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,payments,revenue_etb", lines[0])
	assert.Equal(t, `2026-08-01,14,"1,250,000.00"`, lines[1])
	assert.Equal(t, "2026-08-02,2,980.50", lines[2])
}

func TestSalesCSV_InvertedRange(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := NewUseCase(analytics.NewDashboardUseCase(repo), repo, &fakePDF{})

	now := time.Now()
	_, err := uc.SalesCSV(context.Background(), now, now.AddDate(0, 0, -7))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
