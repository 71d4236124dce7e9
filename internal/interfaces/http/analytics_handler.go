package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/analytics"
	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/application/notifications"
	"github.com/ezm-trade/trade-api/internal/application/reports"
)

// AnalyticsHandler serves the dashboard, the report downloads and the manual
// stock-alert scan.
type AnalyticsHandler struct {
	dashboard *analytics.DashboardUseCase
	reports   *reports.UseCase
	alerts    *notifications.StockAlertService
}

// NewAnalyticsHandler builds the handler.
func NewAnalyticsHandler(
	dashboard *analytics.DashboardUseCase,
	reportsUC *reports.UseCase,
	alerts *notifications.StockAlertService,
) *AnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard, reports: reportsUC, alerts: alerts}
}

// Dashboard godoc
// @Summary      Head-manager dashboard summary
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/v1/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FinancialReportPDF streams the financial report as a PDF download.
// GET /api/v1/reports/financial.pdf
func (h *AnalyticsHandler) FinancialReportPDF(c *fiber.Ctx) error {
	pdf, err := h.reports.FinancialReportPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("financial-report-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// SalesCSV streams the daily-revenue series as a CSV download. Query params
// start and end are dates (2006-01-02); defaults cover the last 30 days.
// GET /api/v1/reports/sales.csv
func (h *AnalyticsHandler) SalesCSV(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	var err error
	if s := c.Query("start"); s != "" {
		if start, err = time.Parse("2006-01-02", s); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start must be a date (2006-01-02)"})
		}
	}
	if s := c.Query("end"); s != "" {
		if end, err = time.Parse("2006-01-02", s); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end must be a date (2006-01-02)"})
		}
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	csvBytes, err := h.reports.SalesCSV(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales.csv"`)
	return c.Send(csvBytes)
}

// ScanStockAlerts runs the low-stock scan on demand and returns the
// per-supplier summaries.
// POST /api/v1/stock-alerts/scan
func (h *AnalyticsHandler) ScanStockAlerts(c *fiber.Ctx) error {
	out, err := h.alerts.Scan(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
