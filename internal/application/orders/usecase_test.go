package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

type fakeOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
	items  map[string][]*entity.PurchaseOrderItem
	seq    int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*entity.PurchaseOrder{},
		items:  map[string][]*entity.PurchaseOrderItem{},
	}
}

func (f *fakeOrderRepo) Create(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error {
	f.seq++
	order.OrderNumber = fmt.Sprintf("PO-%06d", f.seq)
	cp := *order
	f.orders[order.ID] = &cp
	for _, item := range items {
		ic := *item
		f.items[order.ID] = append(f.items[order.ID], &ic)
	}
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return f.GetByID(id)
}

func (f *fakeOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	var out []*entity.PurchaseOrderItem
	for _, item := range f.items[orderID] {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(order *entity.PurchaseOrder) error {
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range f.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range f.orders {
		if o.SupplierID == supplierID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
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

func (f *fakeSupplierRepo) List(int, int) ([]*entity.Supplier, error) { return nil, nil }
func (f *fakeSupplierRepo) CreateProduct(*entity.SupplierProduct) error {
	return nil
}
func (f *fakeSupplierRepo) ListProducts(string) ([]*entity.SupplierProduct, error) {
	return nil, nil
}
func (f *fakeSupplierRepo) ListProductsAtOrBelow(string, int64) ([]*entity.SupplierProduct, error) {
	return nil, nil
}
func (f *fakeSupplierRepo) UpdateProductQuantity(string, int64) error { return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetBySKU(string) (*entity.Product, error)  { return nil, nil }
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error)  { return nil, nil }
func (f *fakeProductRepo) Update(*entity.Product) error              { return nil }
func (f *fakeProductRepo) Delete(string) error                       { return nil }
func (f *fakeProductRepo) CreateCategory(*entity.Category) error     { return nil }
func (f *fakeProductRepo) ListCategories() ([]*entity.Category, error) {
	return nil, nil
}

type fakeWarehouseRepo struct {
	rows map[string]*entity.WarehouseProduct
}

func (f *fakeWarehouseRepo) GetByID(string) (*entity.WarehouseProduct, error) { return nil, nil }

func (f *fakeWarehouseRepo) GetByProduct(productID string) (*entity.WarehouseProduct, error) {
	wp, ok := f.rows[productID]
	if !ok {
		return nil, nil
	}
	cp := *wp
	return &cp, nil
}

func (f *fakeWarehouseRepo) GetByProductForUpdate(productID string) (*entity.WarehouseProduct, error) {
	return f.GetByProduct(productID)
}

func (f *fakeWarehouseRepo) Upsert(wp *entity.WarehouseProduct) error {
	cp := *wp
	f.rows[wp.ProductID] = &cp
	return nil
}

func (f *fakeWarehouseRepo) List(int, int) ([]*entity.WarehouseProduct, error) { return nil, nil }
func (f *fakeWarehouseRepo) ListBelowReorderPoint() ([]*entity.WarehouseProduct, error) {
	return nil, nil
}

func (f *fakeWarehouseRepo) quantity(productID string) int64 {
	if wp, ok := f.rows[productID]; ok {
		return wp.QuantityInStock
	}
	return 0
}

// directTx runs the callback against the shared fakes, no transaction.
type directTx struct {
	warehouse *fakeWarehouseRepo
	orders    *fakeOrderRepo
}

func (d *directTx) Run(_ context.Context, fn func(
	warehouseRepo repository.WarehouseProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return fn(d.warehouse, d.orders)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, string, string)     {}
func (nopNotifier) NotifyRole(context.Context, string, string, string, string) {}

type testEnv struct {
	uc        *UseCase
	orders    *fakeOrderRepo
	warehouse *fakeWarehouseRepo
}

func newTestEnv() *testEnv {
	orderRepo := newFakeOrderRepo()
	warehouse := &fakeWarehouseRepo{rows: map[string]*entity.WarehouseProduct{}}
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "Derba Cement"},
	}}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-x": {ID: "prod-x", Name: "Portland Cement 50kg", SKU: "CEM-50"},
		"prod-y": {ID: "prod-y", Name: "Rebar 12mm", SKU: "RB-12"},
	}}
	uc := NewUseCase(&directTx{warehouse: warehouse, orders: orderRepo}, orderRepo, supplierRepo, productRepo, nopNotifier{})
	return &testEnv{uc: uc, orders: orderRepo, warehouse: warehouse}
}

func createOrder(t *testing.T, env *testEnv) *dto.PurchaseOrderResponse {
	t.Helper()
	resp, err := env.uc.Create(context.Background(), "head-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items: []dto.CreateOrderItem{
			{ProductID: "prod-x", Quantity: 100, UnitPrice: decimal.NewFromInt(700)},
			{ProductID: "prod-y", Quantity: 50, UnitPrice: decimal.NewFromInt(450)},
		},
	})
	require.NoError(t, err)
	return resp
}

func TestOrderCreate_ComputesTotalFromLines(t *testing.T) {
	env := newTestEnv()
	resp := createOrder(t, env)

	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.NotEmpty(t, resp.OrderNumber)
	// 100*700 + 50*450
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(92500)), resp.TotalAmount.String())
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Portland Cement 50kg", resp.Items[0].ProductName)
}

func TestOrderCreate_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.uc.Create(ctx, "head-1", dto.CreatePurchaseOrderRequest{SupplierID: "sup-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "orders need at least one line")

	_, err = env.uc.Create(ctx, "head-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-missing",
		Items:      []dto.CreateOrderItem{{ProductID: "prod-x", Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.uc.Create(ctx, "head-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items:      []dto.CreateOrderItem{{ProductID: "prod-x", Quantity: 0, UnitPrice: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "zero-quantity line")
}

func TestOrderConfirmDelivery_CreditsWarehouse(t *testing.T) {
	env := newTestEnv()
	env.warehouse.rows["prod-x"] = &entity.WarehouseProduct{ID: "wp-1", ProductID: "prod-x", QuantityInStock: 30}
	order := createOrder(t, env)

	_, err := env.uc.MarkInTransit(context.Background(), order.ID)
	require.NoError(t, err)

	resp, err := env.uc.ConfirmDelivery(context.Background(), "head-1", order.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusDelivered, resp.Status)
	require.NotNil(t, resp.DeliveredAt)
	assert.Equal(t, int64(130), env.warehouse.quantity("prod-x"), "existing record is credited")
	assert.Equal(t, int64(50), env.warehouse.quantity("prod-y"), "missing record is opened")
}

func TestOrderConfirmDelivery_RequiresInTransit(t *testing.T) {
	env := newTestEnv()
	order := createOrder(t, env)

	_, err := env.uc.ConfirmDelivery(context.Background(), "head-1", order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "pending orders cannot be confirmed")

	_, err = env.uc.MarkInTransit(context.Background(), order.ID)
	require.NoError(t, err)
	_, err = env.uc.ConfirmDelivery(context.Background(), "head-1", order.ID)
	require.NoError(t, err)

	_, err = env.uc.ConfirmDelivery(context.Background(), "head-1", order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "delivered is terminal")
	assert.Equal(t, int64(100), env.warehouse.quantity("prod-x"), "no double credit")
}

func TestOrderCancel(t *testing.T) {
	env := newTestEnv()
	order := createOrder(t, env)

	resp, err := env.uc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)

	_, err = env.uc.MarkInTransit(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, int64(0), env.warehouse.quantity("prod-x"))
}
