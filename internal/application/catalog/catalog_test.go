package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
	"github.com/ezm-trade/trade-api/pkg/logger"
)

type fakeProductRepo struct {
	products   map[string]*entity.Product
	categories []*entity.Category
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) CreateCategory(c *entity.Category) error {
	cp := *c
	f.categories = append(f.categories, &cp)
	return nil
}

func (f *fakeProductRepo) ListCategories() ([]*entity.Category, error) {
	return f.categories, nil
}

type fakeStoreRepo struct {
	stores map[string]*entity.Store
}

func (f *fakeStoreRepo) Create(s *entity.Store) error { cp := *s; f.stores[s.ID] = &cp; return nil }

func (f *fakeStoreRepo) GetByID(id string) (*entity.Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStoreRepo) List(limit, offset int) ([]*entity.Store, error) {
	var out []*entity.Store
	for _, s := range f.stores {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStoreRepo) Update(s *entity.Store) error { cp := *s; f.stores[s.ID] = &cp; return nil }
func (f *fakeStoreRepo) Delete(id string) error       { delete(f.stores, id); return nil }

type fakeStockRepo struct {
	rows map[string]*entity.Stock
}

func stockKey(productID, storeID string) string { return productID + "|" + storeID }

func (f *fakeStockRepo) Get(productID, storeID string) (*entity.Stock, error) {
	if row, ok := f.rows[stockKey(productID, storeID)]; ok {
		cp := *row
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, StoreID: storeID}, nil
}

func (f *fakeStockRepo) GetForUpdate(productID, storeID string) (*entity.Stock, error) {
	return f.Get(productID, storeID)
}

func (f *fakeStockRepo) Upsert(s *entity.Stock) error {
	cp := *s
	f.rows[stockKey(s.ProductID, s.StoreID)] = &cp
	return nil
}

func (f *fakeStockRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, row := range f.rows {
		if row.StoreID == storeID {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListAvailableElsewhere(excludeStoreID string) ([]repository.StockAvailability, error) {
	var out []repository.StockAvailability
	for _, row := range f.rows {
		if row.StoreID != excludeStoreID && row.Quantity > 0 {
			out = append(out, repository.StockAvailability{
				ProductID: row.ProductID,
				StoreID:   row.StoreID,
				Quantity:  row.Quantity,
			})
		}
	}
	return out, nil
}

type fakeWarehouseRepo struct {
	rows map[string]*entity.WarehouseProduct // keyed by product ID
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

func TestProductCreate_DuplicateSKU(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{SKU: "CEM-50", Name: "Portland Cement 50kg", Price: decimal.NewFromInt(800)})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{SKU: "CEM-50", Name: "Other", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_Validation(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(dto.CreateProductRequest{Name: "no sku"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{SKU: "X", Name: "neg", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_PartialFields(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo)
	created, err := uc.Create(dto.CreateProductRequest{SKU: "RB-12", Name: "Rebar 12mm", Price: decimal.NewFromInt(450)})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(475)
	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "Rebar 12mm", updated.Name, "unset fields stay put")
	assert.True(t, updated.Price.Equal(newPrice))
}

func TestStoreUpdateStockPricing(t *testing.T) {
	stockRepo := &fakeStockRepo{rows: map[string]*entity.Stock{}}
	storeRepo := &fakeStoreRepo{stores: map[string]*entity.Store{
		"store-a": {ID: "store-a", Name: "Downtown Store"},
	}}
	uc := NewStoreUseCase(storeRepo, stockRepo, newFakeProductRepo(), nil)

	_ = stockRepo.Upsert(&entity.Stock{
		ProductID: "prod-x", StoreID: "store-a", Quantity: 30,
		LowStockThreshold: 10, UpdatedAt: time.Now(),
	})

	price := decimal.NewFromInt(900)
	threshold := int64(15)
	resp, err := uc.UpdateStockPricing("store-a", "prod-x", dto.UpdateStockPricingRequest{
		SellingPrice: &price, LowStockThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.True(t, resp.SellingPrice.Equal(price))
	assert.Equal(t, int64(15), resp.LowStockThreshold)
	assert.Equal(t, int64(30), resp.Quantity, "pricing updates never touch quantity")

	_, err = uc.UpdateStockPricing("store-a", "prod-missing", dto.UpdateStockPricingRequest{SellingPrice: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateStockPricing("store-a", "prod-x", dto.UpdateStockPricingRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "empty update is rejected")
}

func TestStoreRecordSale(t *testing.T) {
	stockRepo := &fakeStockRepo{rows: map[string]*entity.Stock{}}
	storeRepo := &fakeStoreRepo{stores: map[string]*entity.Store{
		"store-a": {ID: "store-a", Name: "Downtown Store"},
	}}
	uc := NewStoreUseCase(storeRepo, stockRepo, newFakeProductRepo(), nil)
	ctx := context.Background()

	_ = stockRepo.Upsert(&entity.Stock{
		ProductID: "prod-x", StoreID: "store-a", Quantity: 10,
		LowStockThreshold: 5, UpdatedAt: time.Now(),
	})

	resp, err := uc.RecordSale(ctx, "store-a", "prod-x", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Quantity)

	_, err = uc.RecordSale(ctx, "store-a", "prod-x", 8)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.RecordSale(ctx, "store-a", "prod-x", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDropdownRestock_OffersWholeCatalog(t *testing.T) {
	// Restocking can originate an order for anything, so even products the
	// warehouse has run dry on stay in the list.
	warehouseRepo := &fakeWarehouseRepo{rows: map[string]*entity.WarehouseProduct{
		"prod-x": {ID: "wp-1", ProductID: "prod-x", SKU: "CEM-50", QuantityInStock: 40},
	}}
	productRepo := newFakeProductRepo()
	productRepo.products["prod-x"] = &entity.Product{ID: "prod-x", Name: "Portland Cement 50kg", SKU: "CEM-50"}
	productRepo.products["prod-y"] = &entity.Product{ID: "prod-y", Name: "Rebar 12mm", SKU: "RB-12"}
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	uc := NewDropdownUseCase(warehouseRepo, &fakeStockRepo{rows: map[string]*entity.Stock{}}, productRepo, NopBytesCache{}, log)

	out, err := uc.RestockOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2, "the full catalog is offered, stocked or not")

	names := make(map[string]string, len(out))
	for _, opt := range out {
		names[opt.ProductID] = opt.ProductName
	}
	assert.Equal(t, "Portland Cement 50kg", names["prod-x"])
	assert.Equal(t, "Rebar 12mm", names["prod-y"])
}

func TestDropdownWarehouse_IncludesQuantities(t *testing.T) {
	warehouseRepo := &fakeWarehouseRepo{rows: map[string]*entity.WarehouseProduct{
		"prod-x": {ID: "wp-1", ProductID: "prod-x", SKU: "CEM-50", QuantityInStock: 40},
		"prod-y": {ID: "wp-2", ProductID: "prod-y", SKU: "RB-12", QuantityInStock: 0},
	}}
	productRepo := newFakeProductRepo()
	productRepo.products["prod-x"] = &entity.Product{ID: "prod-x", Name: "Portland Cement 50kg", SKU: "CEM-50"}
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	uc := NewDropdownUseCase(warehouseRepo, &fakeStockRepo{rows: map[string]*entity.Stock{}}, productRepo, NopBytesCache{}, log)

	out, err := uc.WarehouseOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	byID := make(map[string]dto.DropdownProduct, len(out))
	for _, opt := range out {
		byID[opt.ProductID] = opt
	}
	assert.Equal(t, int64(40), byID["prod-x"].Quantity)
	assert.Equal(t, "Portland Cement 50kg", byID["prod-x"].ProductName)
	assert.Equal(t, "RB-12", byID["prod-y"].ProductName, "SKU stands in when the catalog row is gone")
}

func TestDropdownTransfer_ExcludesOwnStore(t *testing.T) {
	stockRepo := &fakeStockRepo{rows: map[string]*entity.Stock{}}
	_ = stockRepo.Upsert(&entity.Stock{ProductID: "prod-x", StoreID: "store-a", Quantity: 5})
	_ = stockRepo.Upsert(&entity.Stock{ProductID: "prod-x", StoreID: "store-b", Quantity: 9})
	_ = stockRepo.Upsert(&entity.Stock{ProductID: "prod-y", StoreID: "store-b", Quantity: 0})
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	uc := NewDropdownUseCase(&fakeWarehouseRepo{rows: map[string]*entity.WarehouseProduct{}}, stockRepo, newFakeProductRepo(), NopBytesCache{}, log)

	out, err := uc.TransferOptions(context.Background(), "store-a")
	require.NoError(t, err)
	require.Len(t, out, 1, "own store and zero-quantity rows are excluded")
	assert.Equal(t, "store-b", out[0].StoreID)
	assert.Equal(t, int64(9), out[0].Quantity)
}

func TestWarehouseUpsert_CreatesThenUpdates(t *testing.T) {
	warehouseRepo := &fakeWarehouseRepo{rows: map[string]*entity.WarehouseProduct{}}
	productRepo := newFakeProductRepo()
	productRepo.products["prod-x"] = &entity.Product{ID: "prod-x", Name: "Portland Cement 50kg", SKU: "CEM-50"}
	uc := NewWarehouseUseCase(warehouseRepo, productRepo)

	qty := int64(100)
	created, err := uc.Upsert("prod-x", dto.UpsertWarehouseProductRequest{
		QuantityInStock: &qty, ReorderPoint: 20, UnitPrice: decimal.NewFromInt(700),
	})
	require.NoError(t, err)
	assert.Equal(t, "CEM-50", created.SKU, "SKU defaults from the catalog")
	assert.False(t, created.NeedsReorder)

	low := int64(15)
	updated, err := uc.Upsert("prod-x", dto.UpsertWarehouseProductRequest{
		QuantityInStock: &low, ReorderPoint: 20, UnitPrice: decimal.NewFromInt(700),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "upsert keeps the existing record")
	assert.True(t, updated.NeedsReorder)

	_, err = uc.Upsert("prod-missing", dto.UpsertWarehouseProductRequest{UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
