package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
	"github.com/ezm-trade/trade-api/pkg/logger"
)

// Stock alert levels.
const (
	LowStockThreshold      = 10
	CriticalStockThreshold = 5

	StockLevelOK       = "ok"
	StockLevelLow      = "low"
	StockLevelCritical = "critical"
)

// ClassifyStockLevel buckets a quantity against the alert thresholds.
func ClassifyStockLevel(qty int64) string {
	switch {
	case qty <= CriticalStockThreshold:
		return StockLevelCritical
	case qty <= LowStockThreshold:
		return StockLevelLow
	default:
		return StockLevelOK
	}
}

// StockAlertService scans supplier catalogs for low quantities and raises
// per-supplier summaries. It is stateless: every scan re-reads levels and
// notifies whatever is currently at or below the threshold.
type StockAlertService struct {
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
	notifier     *Service
	mailer       Mailer
	log          *logger.Logger
}

// NewStockAlertService builds the scanner. mailer may be nil.
func NewStockAlertService(
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
	notifier *Service,
	mailer Mailer,
	log *logger.Logger,
) *StockAlertService {
	return &StockAlertService{
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		mailer:       mailer,
		log:          log,
	}
}

// SupplierAlert is one supplier's low-stock summary.
type SupplierAlert struct {
	SupplierID   string         `json:"supplier_id"`
	SupplierName string         `json:"supplier_name"`
	Products     []ProductAlert `json:"products"`
}

// ProductAlert is one catalog entry at or below the low threshold.
type ProductAlert struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Level       string `json:"level"`
}

// Scan walks every supplier catalog and sends one email plus in-app
// notifications per supplier with entries at or below the low threshold.
// It returns the summaries so the trigger endpoint can echo them.
func (s *StockAlertService) Scan(ctx context.Context) ([]SupplierAlert, error) {
	rows, err := s.supplierRepo.ListProductsAtOrBelow("", LowStockThreshold)
	if err != nil {
		return nil, err
	}

	bySupplier := make(map[string][]*entity.SupplierProduct)
	var order []string
	for _, sp := range rows {
		if _, seen := bySupplier[sp.SupplierID]; !seen {
			order = append(order, sp.SupplierID)
		}
		bySupplier[sp.SupplierID] = append(bySupplier[sp.SupplierID], sp)
	}

	alerts := make([]SupplierAlert, 0, len(order))
	for _, supplierID := range order {
		supplier, err := s.supplierRepo.GetByID(supplierID)
		if err != nil || supplier == nil {
			s.log.Warn().Err(err).Str("supplier_id", supplierID).Msg("alert scan skipped supplier")
			continue
		}
		alert := SupplierAlert{SupplierID: supplier.ID, SupplierName: supplier.Name}
		for _, sp := range bySupplier[supplierID] {
			alert.Products = append(alert.Products, ProductAlert{
				ProductID:   sp.ID,
				ProductName: sp.ProductName,
				Quantity:    sp.StockQuantity,
				Level:       ClassifyStockLevel(sp.StockQuantity),
			})
		}
		s.deliver(ctx, supplier, alert)
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func (s *StockAlertService) deliver(ctx context.Context, supplier *entity.Supplier, alert SupplierAlert) {
	var b strings.Builder
	fmt.Fprintf(&b, "The following catalog entries are running low:\n\n")
	for _, p := range alert.Products {
		fmt.Fprintf(&b, "- %s: %d left (%s)\n", p.ProductName, p.Quantity, p.Level)
	}
	subject := fmt.Sprintf("Low stock alert: %d product(s)", len(alert.Products))

	if s.mailer != nil && supplier.Email != "" {
		if err := s.mailer.Send([]string{supplier.Email}, subject, b.String()); err != nil {
			s.log.Warn().Err(err).Str("supplier_id", supplier.ID).Msg("alert email failed")
		}
	}

	users, err := s.userRepo.ListByRole(entity.RoleSupplier)
	if err != nil {
		s.log.Error().Err(err).Msg("supplier user lookup failed")
		return
	}
	for _, u := range users {
		if u.SupplierID == supplier.ID {
			s.notifier.Notify(ctx, u.ID, entity.NotificationLowStock, subject, b.String())
		}
	}
}

// OnStockUpdated raises a low-stock alert when an update moves a store row
// from above the threshold to at or below it. Upward moves and rows already
// low stay quiet so repeated sales do not spam the feed.
func (s *StockAlertService) OnStockUpdated(ctx context.Context, before, after *entity.Stock, productName, storeName string) {
	if after == nil || !after.IsLow() {
		return
	}
	if before != nil && before.IsLow() {
		return
	}
	level := ClassifyStockLevel(after.Quantity)
	s.notifier.NotifyRole(ctx, entity.RoleHeadManager, entity.NotificationLowStock,
		fmt.Sprintf("Low stock at %s", storeName),
		fmt.Sprintf("%s is down to %d units (%s)", productName, after.Quantity, level))
}
