package requests

import (
	"context"
	"fmt"
	"time"

	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

// In-memory fakes for the workflow tests. The fake TxRunner simply invokes
// the callback with the shared fakes; the use cases validate before writing,
// which is what the atomicity assertions below rely on.

type fakeStockRepo struct {
	rows   map[string]*entity.Stock
	locked []string // store IDs in GetForUpdate order
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[string]*entity.Stock{}}
}

func stockKey(productID, storeID string) string { return productID + "|" + storeID }

func (f *fakeStockRepo) Get(productID, storeID string) (*entity.Stock, error) {
	if s, ok := f.rows[stockKey(productID, storeID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, StoreID: storeID}, nil
}

func (f *fakeStockRepo) GetForUpdate(productID, storeID string) (*entity.Stock, error) {
	f.locked = append(f.locked, storeID)
	return f.Get(productID, storeID)
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	f.rows[stockKey(stock.ProductID, stock.StoreID)] = &cp
	return nil
}

func (f *fakeStockRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range f.rows {
		if s.StoreID == storeID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListAvailableElsewhere(excludeStoreID string) ([]repository.StockAvailability, error) {
	var out []repository.StockAvailability
	for _, s := range f.rows {
		if s.StoreID != excludeStoreID && s.Quantity > 0 {
			out = append(out, repository.StockAvailability{
				ProductID: s.ProductID, StoreID: s.StoreID, Quantity: s.Quantity,
			})
		}
	}
	return out, nil
}

func (f *fakeStockRepo) quantity(productID, storeID string) int64 {
	if s, ok := f.rows[stockKey(productID, storeID)]; ok {
		return s.Quantity
	}
	return 0
}

type fakeWarehouseRepo struct {
	rows map[string]*entity.WarehouseProduct // keyed by product ID
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{rows: map[string]*entity.WarehouseProduct{}}
}

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.WarehouseProduct, error) {
	for _, wp := range f.rows {
		if wp.ID == id {
			cp := *wp
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeWarehouseRepo) GetByProduct(productID string) (*entity.WarehouseProduct, error) {
	if wp, ok := f.rows[productID]; ok {
		cp := *wp
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeWarehouseRepo) GetByProductForUpdate(productID string) (*entity.WarehouseProduct, error) {
	return f.GetByProduct(productID)
}

func (f *fakeWarehouseRepo) Upsert(wp *entity.WarehouseProduct) error {
	cp := *wp
	f.rows[wp.ProductID] = &cp
	return nil
}

func (f *fakeWarehouseRepo) List(limit, offset int) ([]*entity.WarehouseProduct, error) {
	var out []*entity.WarehouseProduct
	for _, wp := range f.rows {
		cp := *wp
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeWarehouseRepo) ListBelowReorderPoint() ([]*entity.WarehouseProduct, error) {
	var out []*entity.WarehouseProduct
	for _, wp := range f.rows {
		if wp.NeedsReorder() {
			cp := *wp
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeWarehouseRepo) quantity(productID string) int64 {
	if wp, ok := f.rows[productID]; ok {
		return wp.QuantityInStock
	}
	return 0
}

type fakeRestockRepo struct {
	rows map[string]*entity.RestockRequest
	seq  int
}

func newFakeRestockRepo() *fakeRestockRepo {
	return &fakeRestockRepo{rows: map[string]*entity.RestockRequest{}}
}

func (f *fakeRestockRepo) Create(r *entity.RestockRequest) error {
	f.seq++
	r.RequestNumber = fmt.Sprintf("RST-%06d", f.seq)
	cp := *r
	f.rows[r.ID] = &cp
	return nil
}

func (f *fakeRestockRepo) GetByID(id string) (*entity.RestockRequest, error) {
	if r, ok := f.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRestockRepo) GetByIDForUpdate(id string) (*entity.RestockRequest, error) {
	return f.GetByID(id)
}

func (f *fakeRestockRepo) Update(r *entity.RestockRequest) error {
	cp := *r
	f.rows[r.ID] = &cp
	return nil
}

func (f *fakeRestockRepo) ListByStore(storeID string, limit, offset int) ([]*entity.RestockRequest, error) {
	var out []*entity.RestockRequest
	for _, r := range f.rows {
		if r.StoreID == storeID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRestockRepo) ListByStatus(status string, limit, offset int) ([]*entity.RestockRequest, error) {
	var out []*entity.RestockRequest
	for _, r := range f.rows {
		if r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRestockRepo) List(limit, offset int) ([]*entity.RestockRequest, error) {
	var out []*entity.RestockRequest
	for _, r := range f.rows {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTransferRepo struct {
	rows map[string]*entity.StoreStockTransferRequest
	seq  int
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{rows: map[string]*entity.StoreStockTransferRequest{}}
}

func (f *fakeTransferRepo) Create(t *entity.StoreStockTransferRequest) error {
	f.seq++
	t.RequestNumber = fmt.Sprintf("TRF-%06d", f.seq)
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTransferRepo) GetByID(id string) (*entity.StoreStockTransferRequest, error) {
	if t, ok := f.rows[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTransferRepo) GetByIDForUpdate(id string) (*entity.StoreStockTransferRequest, error) {
	return f.GetByID(id)
}

func (f *fakeTransferRepo) Update(t *entity.StoreStockTransferRequest) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTransferRepo) ListByStore(storeID string, limit, offset int) ([]*entity.StoreStockTransferRequest, error) {
	var out []*entity.StoreStockTransferRequest
	for _, t := range f.rows {
		if t.FromStoreID == storeID || t.ToStoreID == storeID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTransferRepo) ListByStatus(status string, limit, offset int) ([]*entity.StoreStockTransferRequest, error) {
	var out []*entity.StoreStockTransferRequest
	for _, t := range f.rows {
		if t.Status == status {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTransferRepo) List(limit, offset int) ([]*entity.StoreStockTransferRequest, error) {
	var out []*entity.StoreStockTransferRequest
	for _, t := range f.rows {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

type fakeProductRepo struct {
	rows map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{rows: map[string]*entity.Product{}}
	for _, p := range products {
		f.rows[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.rows[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := f.rows[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.rows {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error                   { return nil }
func (f *fakeProductRepo) Delete(id string) error                           { return nil }
func (f *fakeProductRepo) CreateCategory(c *entity.Category) error          { return nil }
func (f *fakeProductRepo) ListCategories() ([]*entity.Category, error)      { return nil, nil }

type fakeStoreRepo struct {
	rows map[string]*entity.Store
}

func newFakeStoreRepo(stores ...*entity.Store) *fakeStoreRepo {
	f := &fakeStoreRepo{rows: map[string]*entity.Store{}}
	for _, s := range stores {
		f.rows[s.ID] = s
	}
	return f
}

func (f *fakeStoreRepo) Create(s *entity.Store) error { f.rows[s.ID] = s; return nil }
func (f *fakeStoreRepo) GetByID(id string) (*entity.Store, error) {
	if s, ok := f.rows[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeStoreRepo) List(limit, offset int) ([]*entity.Store, error) { return nil, nil }
func (f *fakeStoreRepo) Update(s *entity.Store) error                    { return nil }
func (f *fakeStoreRepo) Delete(id string) error                          { return nil }

// fakeTxRunner runs the callback directly against the shared fakes.
type fakeTxRunner struct {
	stock     *fakeStockRepo
	warehouse *fakeWarehouseRepo
	restock   *fakeRestockRepo
	transfer  *fakeTransferRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseProductRepository,
	restockRepo repository.RestockRequestRepository,
	transferRepo repository.TransferRequestRepository,
) error) error {
	return fn(f.stock, f.warehouse, f.restock, f.transfer)
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	direct []string // "userID: title"
	roles  []string // "role: title"
}

func (n *recordingNotifier) Notify(_ context.Context, userID, _, title, _ string) {
	n.direct = append(n.direct, userID+": "+title)
}

func (n *recordingNotifier) NotifyRole(_ context.Context, role, _, title, _ string) {
	n.roles = append(n.roles, role+": "+title)
}

// testEnv bundles everything a workflow test needs.
type testEnv struct {
	stock     *fakeStockRepo
	warehouse *fakeWarehouseRepo
	restock   *fakeRestockRepo
	transfer  *fakeTransferRepo
	products  *fakeProductRepo
	stores    *fakeStoreRepo
	notifier  *recordingNotifier

	restockUC  *RestockUseCase
	transferUC *TransferUseCase
}

func newTestEnv() *testEnv {
	env := &testEnv{
		stock:     newFakeStockRepo(),
		warehouse: newFakeWarehouseRepo(),
		restock:   newFakeRestockRepo(),
		transfer:  newFakeTransferRepo(),
		notifier:  &recordingNotifier{},
	}
	env.products = newFakeProductRepo(
		&entity.Product{ID: "prod-x", Name: "Portland Cement 50kg", SKU: "CEM-001"},
		&entity.Product{ID: "prod-y", Name: "Rebar 12mm", SKU: "STL-012"},
	)
	env.stores = newFakeStoreRepo(
		&entity.Store{ID: "store-a", Name: "Downtown Store"},
		&entity.Store{ID: "store-b", Name: "Merkato Store"},
	)
	tx := &fakeTxRunner{
		stock: env.stock, warehouse: env.warehouse,
		restock: env.restock, transfer: env.transfer,
	}
	env.restockUC = NewRestockUseCase(tx, env.restock, env.products, env.stores, env.notifier)
	env.transferUC = NewTransferUseCase(tx, env.transfer, env.products, env.stores, env.notifier)
	return env
}

func (e *testEnv) seedWarehouse(productID string, qty int64) {
	_ = e.warehouse.Upsert(&entity.WarehouseProduct{
		ID:              "wp-" + productID,
		ProductID:       productID,
		QuantityInStock: qty,
		ReorderPoint:    5,
		UpdatedAt:       time.Now(),
	})
}

func (e *testEnv) seedStock(productID, storeID string, qty int64) {
	_ = e.stock.Upsert(&entity.Stock{
		ProductID:         productID,
		StoreID:           storeID,
		Quantity:          qty,
		LowStockThreshold: entity.DefaultLowStockThreshold,
		UpdatedAt:         time.Now(),
	})
}
