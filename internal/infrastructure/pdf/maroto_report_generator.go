// Package pdf renders the financial report handed out to head managers.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: EZM Trade Management  │  Period + generated at     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REVENUE: today / month / month order spend                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLES: restock by status | transfer by status             │
//	│  TABLE: top restocked products                              │
//	│  TABLE: per-store inventory snapshot                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/application/reports"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 84, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implements reports.PDFGenerator using Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator builds the generator.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateFinancialReport renders the dashboard summary and returns the PDF bytes.
func (g *MarotoReportGenerator) GenerateFinancialReport(_ context.Context, summary *dto.DashboardSummaryDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("EZM Financial Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(revenueRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Restock requests by status"))
	m.AddRows(statusRows(summary.RestockByStatus)...)
	m.AddRows(sectionTitle("Transfer requests by status"))
	m.AddRows(statusRows(summary.TransferByStatus)...)

	m.AddRows(sectionTitle("Top restocked products (30 days)"))
	m.AddRows(topProductHeader())
	m.AddRows(topProductRows(summary.TopProducts)...)

	m.AddRows(sectionTitle("Inventory by store"))
	m.AddRows(storeHeader())
	m.AddRows(storeRows(summary.Stores)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(summary *dto.DashboardSummaryDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("EZM Trade Management", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Financial report", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generated "+summary.GeneratedAt.Format("02 Jan 2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func revenueRow(summary *dto.DashboardSummaryDTO) core.Row {
	metric := func(label, value string) []core.Component {
		return []core.Component{
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6, Color: colorPrimary}),
		}
	}
	return row.New(16).Add(
		col.New(3).Add(metric("Revenue today (ETB)", summary.TodayRevenue.StringFixed(2))...),
		col.New(3).Add(metric(fmt.Sprintf("Payments today: %d", summary.TodayPayments),
			fmt.Sprintf("Month: %d", summary.MonthPayments))...),
		col.New(3).Add(metric("Revenue this month (ETB)", summary.MonthRevenue.StringFixed(2))...),
		col.New(3).Add(metric("Order spend this month (ETB)", summary.MonthOrderSpend.StringFixed(2))...),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	))
}

// statusRows renders the status counts in a stable order.
func statusRows(counts map[string]int) []core.Row {
	statuses := make([]string, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	rows := make([]core.Row, 0, len(statuses))
	for _, status := range statuses {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(status, props.Text{Size: 8, Top: 1, Left: 2})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", counts[status]), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 2,
			})),
			col.New(6),
		))
	}
	return rows
}

func topProductHeader() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Product", 7, align.Left),
		h("Approved qty", 3, align.Right),
		h("Requests", 2, align.Right),
	)
}

func topProductRows(products []dto.TopProductDTO) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(6).Add(
			col.New(7).Add(text.New(p.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", p.ApprovedQty), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", p.Requests), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

func storeHeader() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Store", 5, align.Left),
		h("Units", 2, align.Right),
		h("Low stock items", 2, align.Right),
		h("Valuation (ETB)", 3, align.Right),
	)
}

func storeRows(stores []dto.StoreStockDTO) []core.Row {
	rows := make([]core.Row, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, row.New(6).Add(
			col.New(5).Add(text.New(s.StoreName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", s.TotalUnits), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", s.LowStockItems), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(3).Add(text.New(s.Valuation.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}
