package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ezm-trade/trade-api/internal/application/analytics"
	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

// PDFGenerator renders the financial summary into a PDF document.
type PDFGenerator interface {
	GenerateFinancialReport(ctx context.Context, summary *dto.DashboardSummaryDTO) ([]byte, error)
}

// UseCase produces the downloadable exports: the financial PDF and the
// daily-revenue CSV.
type UseCase struct {
	dashboard     *analytics.DashboardUseCase
	analyticsRepo repository.AnalyticsRepository
	pdf           PDFGenerator
	printer       *message.Printer
}

// NewUseCase builds the use case.
func NewUseCase(dashboard *analytics.DashboardUseCase, analyticsRepo repository.AnalyticsRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{
		dashboard:     dashboard,
		analyticsRepo: analyticsRepo,
		pdf:           pdf,
		printer:       message.NewPrinter(language.English),
	}
}

// FinancialReportPDF renders the current dashboard summary as a PDF.
func (uc *UseCase) FinancialReportPDF(ctx context.Context) ([]byte, error) {
	summary, err := uc.dashboard.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := uc.pdf.GenerateFinancialReport(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("reports: render pdf: %w", err)
	}
	return doc, nil
}

// SalesCSV exports the per-day confirmed payment series for the period as
// CSV. Amounts carry grouped thousands (1,250,000.00) for the spreadsheet
// crowd the export is made for.
func (uc *UseCase) SalesCSV(ctx context.Context, start, end time.Time) ([]byte, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	points, err := uc.analyticsRepo.GetDailyRevenue(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "payments", "revenue_etb"}); err != nil {
		return nil, err
	}
	for _, p := range points {
		rev, _ := p.Revenue.Round(2).Float64()
		record := []string{
			p.Day.Format("2006-01-02"),
			fmt.Sprintf("%d", p.Payments),
			uc.printer.Sprintf("%.2f", rev),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
