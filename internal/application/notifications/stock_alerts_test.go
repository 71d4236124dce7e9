package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/pkg/logger"
)

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
	products  []*entity.SupplierProduct
}

func (f *fakeSupplierRepo) Create(s *entity.Supplier) error { f.suppliers[s.ID] = s; return nil }

func (f *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range f.suppliers {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSupplierRepo) CreateProduct(sp *entity.SupplierProduct) error {
	cp := *sp
	f.products = append(f.products, &cp)
	return nil
}

func (f *fakeSupplierRepo) ListProducts(supplierID string) ([]*entity.SupplierProduct, error) {
	var out []*entity.SupplierProduct
	for _, sp := range f.products {
		if sp.SupplierID == supplierID {
			cp := *sp
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSupplierRepo) ListProductsAtOrBelow(supplierID string, threshold int64) ([]*entity.SupplierProduct, error) {
	var out []*entity.SupplierProduct
	for _, sp := range f.products {
		if supplierID != "" && sp.SupplierID != supplierID {
			continue
		}
		if sp.StockQuantity <= threshold {
			cp := *sp
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSupplierRepo) UpdateProductQuantity(id string, quantity int64) error {
	for _, sp := range f.products {
		if sp.ID == id {
			sp.StockQuantity = quantity
		}
	}
	return nil
}

func newAlertFixture() (*StockAlertService, *fakeSupplierRepo, *fakeNotifRepo, *fakeMailer) {
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "Habesha Steel", Email: "sales@habesha.example"},
		"sup-2": {ID: "sup-2", Name: "Derba Cement", Email: "orders@derba.example"},
	}}
	notifRepo := &fakeNotifRepo{}
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"head-1": {ID: "head-1", Email: "head1@ezm.example", Role: entity.RoleHeadManager},
		"sup-u1": {ID: "sup-u1", Email: "u1@habesha.example", Role: entity.RoleSupplier, SupplierID: "sup-1"},
		"sup-u2": {ID: "sup-u2", Email: "u2@derba.example", Role: entity.RoleSupplier, SupplierID: "sup-2"},
	}}
	mailer := &fakeMailer{}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	svc := NewService(notifRepo, userRepo, mailer, NopCache{}, log)
	alerts := NewStockAlertService(supplierRepo, userRepo, svc, mailer, log)
	return alerts, supplierRepo, notifRepo, mailer
}

func TestClassifyStockLevel(t *testing.T) {
	assert.Equal(t, StockLevelOK, ClassifyStockLevel(11))
	assert.Equal(t, StockLevelLow, ClassifyStockLevel(10))
	assert.Equal(t, StockLevelLow, ClassifyStockLevel(6))
	assert.Equal(t, StockLevelCritical, ClassifyStockLevel(5))
	assert.Equal(t, StockLevelCritical, ClassifyStockLevel(0))
}

func TestScan_GroupsBySupplier(t *testing.T) {
	alerts, supplierRepo, notifRepo, mailer := newAlertFixture()
	supplierRepo.products = []*entity.SupplierProduct{
		{ID: "sp-1", SupplierID: "sup-1", ProductName: "Rebar 12mm", StockQuantity: 3},
		{ID: "sp-2", SupplierID: "sup-1", ProductName: "Rebar 16mm", StockQuantity: 8},
		{ID: "sp-3", SupplierID: "sup-2", ProductName: "Cement 50kg", StockQuantity: 10},
		{ID: "sp-4", SupplierID: "sup-2", ProductName: "Cement 25kg", StockQuantity: 40},
	}

	out, err := alerts.Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 2, "one summary per supplier with low entries")
	assert.Len(t, out[0].Products, 2)
	assert.Equal(t, StockLevelCritical, out[0].Products[0].Level)
	assert.Equal(t, StockLevelLow, out[0].Products[1].Level)
	require.Len(t, out[1].Products, 1, "healthy entries stay out of the summary")

	// One email per supplier, not per product.
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, []string{"sales@habesha.example"}, mailer.sent[0].to)
	assert.Equal(t, []string{"orders@derba.example"}, mailer.sent[1].to)

	// Each supplier's own users get the in-app notification.
	require.Len(t, notifRepo.rows, 2)
	recipients := map[string]bool{}
	for _, n := range notifRepo.rows {
		assert.Equal(t, entity.NotificationLowStock, n.Type)
		recipients[n.UserID] = true
	}
	assert.True(t, recipients["sup-u1"] && recipients["sup-u2"])
}

func TestScan_NothingLowIsQuiet(t *testing.T) {
	alerts, supplierRepo, notifRepo, mailer := newAlertFixture()
	supplierRepo.products = []*entity.SupplierProduct{
		{ID: "sp-1", SupplierID: "sup-1", ProductName: "Rebar 12mm", StockQuantity: 100},
	}

	out, err := alerts.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, mailer.sent)
	assert.Empty(t, notifRepo.rows)
}

func TestOnStockUpdated_AlertsOnlyOnDownwardCrossing(t *testing.T) {
	alerts, _, notifRepo, _ := newAlertFixture()
	ctx := context.Background()

	above := &entity.Stock{Quantity: 12, LowStockThreshold: 10}
	low := &entity.Stock{Quantity: 9, LowStockThreshold: 10}
	lower := &entity.Stock{Quantity: 4, LowStockThreshold: 10}

	alerts.OnStockUpdated(ctx, above, low, "Rebar 12mm", "Downtown Store")
	require.Len(t, notifRepo.rows, 1, "crossing the threshold downward alerts once")
	assert.Equal(t, entity.NotificationLowStock, notifRepo.rows[0].Type)

	alerts.OnStockUpdated(ctx, low, lower, "Rebar 12mm", "Downtown Store")
	assert.Len(t, notifRepo.rows, 1, "already-low rows do not re-alert")

	alerts.OnStockUpdated(ctx, low, above, "Rebar 12mm", "Downtown Store")
	assert.Len(t, notifRepo.rows, 1, "upward moves are quiet")
}
