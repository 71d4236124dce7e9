package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
	"github.com/ezm-trade/trade-api/pkg/logger"
)

// BytesCache caches serialized payloads with a TTL. Dropdowns are read on
// every request-form load, so short-lived caching takes the pressure off the
// joins behind them.
type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// NopBytesCache satisfies BytesCache when Redis is not configured.
type NopBytesCache struct{}

func (NopBytesCache) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (NopBytesCache) Set(context.Context, string, []byte, time.Duration) {}

const dropdownTTL = 60 * time.Second

// DropdownUseCase builds the option lists for the request forms.
//
// Restock dropdown: the whole catalog, since a restock can originate an order
// for anything and availability is judged at approval time. Transfer dropdown:
// products held with positive quantity at stores other than the requester's,
// filtered at read time so a store manager can never file a transfer the
// reviewer must reject for pure unavailability. Warehouse dropdown: the
// warehouse records with their on-hand quantities.
type DropdownUseCase struct {
	warehouseRepo repository.WarehouseProductRepository
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	cache         BytesCache
	log           *logger.Logger
}

// NewDropdownUseCase builds the use case.
func NewDropdownUseCase(
	warehouseRepo repository.WarehouseProductRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	cache BytesCache,
	log *logger.Logger,
) *DropdownUseCase {
	return &DropdownUseCase{
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		cache:         cache,
		log:           log,
	}
}

// RestockOptions lists every catalog product.
func (uc *DropdownUseCase) RestockOptions(ctx context.Context) ([]dto.DropdownProduct, error) {
	const key = "dropdown:restock"
	if cached, ok := uc.fromCache(ctx, key); ok {
		return cached, nil
	}

	products, err := uc.productRepo.List(1000, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DropdownProduct, 0, len(products))
	for _, p := range products {
		out = append(out, dto.DropdownProduct{
			ProductID:   p.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
		})
	}
	uc.toCache(ctx, key, out)
	return out, nil
}

// WarehouseOptions lists warehouse products with their on-hand quantity.
func (uc *DropdownUseCase) WarehouseOptions(ctx context.Context) ([]dto.DropdownProduct, error) {
	const key = "dropdown:warehouse"
	if cached, ok := uc.fromCache(ctx, key); ok {
		return cached, nil
	}

	records, err := uc.warehouseRepo.List(1000, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DropdownProduct, 0, len(records))
	for _, wp := range records {
		name := wp.SKU
		if p, err := uc.productRepo.GetByID(wp.ProductID); err == nil && p != nil {
			name = p.Name
		}
		out = append(out, dto.DropdownProduct{
			ProductID:   wp.ProductID,
			ProductName: name,
			SKU:         wp.SKU,
			Quantity:    wp.QuantityInStock,
		})
	}
	uc.toCache(ctx, key, out)
	return out, nil
}

// TransferOptions lists products available at stores other than the
// requester's own.
func (uc *DropdownUseCase) TransferOptions(ctx context.Context, excludeStoreID string) ([]dto.DropdownProduct, error) {
	key := "dropdown:transfer:" + excludeStoreID
	if cached, ok := uc.fromCache(ctx, key); ok {
		return cached, nil
	}

	rows, err := uc.stockRepo.ListAvailableElsewhere(excludeStoreID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DropdownProduct, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DropdownProduct{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			StoreID:     r.StoreID,
			StoreName:   r.StoreName,
			Quantity:    r.Quantity,
		})
	}
	uc.toCache(ctx, key, out)
	return out, nil
}

func (uc *DropdownUseCase) fromCache(ctx context.Context, key string) ([]dto.DropdownProduct, bool) {
	raw, ok := uc.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var out []dto.DropdownProduct
	if err := json.Unmarshal(raw, &out); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("dropdown cache entry corrupt")
		return nil, false
	}
	return out, true
}

func (uc *DropdownUseCase) toCache(ctx context.Context, key string, out []dto.DropdownProduct) {
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	uc.cache.Set(ctx, key, raw, dropdownTTL)
}
