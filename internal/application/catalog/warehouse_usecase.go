package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

// WarehouseUseCase warehouse-side inventory records.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseProductRepository
	productRepo   repository.ProductRepository
}

// NewWarehouseUseCase builds the use case.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseProductRepository, productRepo repository.ProductRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo, productRepo: productRepo}
}

// List returns a page of warehouse records.
func (uc *WarehouseUseCase) List(page dto.PageRequest) ([]dto.WarehouseProductResponse, error) {
	page.DefaultPage()
	list, err := uc.warehouseRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseProductResponse, 0, len(list))
	for _, wp := range list {
		out = append(out, toWarehouseResponse(wp))
	}
	return out, nil
}

// GetByProduct returns the warehouse record for a product.
func (uc *WarehouseUseCase) GetByProduct(productID string) (*dto.WarehouseProductResponse, error) {
	wp, err := uc.warehouseRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if wp == nil {
		return nil, domain.ErrNotFound
	}
	resp := toWarehouseResponse(wp)
	return &resp, nil
}

// ListBelowReorderPoint returns records whose on-hand quantity is at or below
// their reorder point, for the purchasing screen.
func (uc *WarehouseUseCase) ListBelowReorderPoint() ([]dto.WarehouseProductResponse, error) {
	list, err := uc.warehouseRepo.ListBelowReorderPoint()
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseProductResponse, 0, len(list))
	for _, wp := range list {
		out = append(out, toWarehouseResponse(wp))
	}
	return out, nil
}

// Upsert creates or updates the warehouse record for a product. Quantity is
// only applied when the request carries it; deliveries adjust quantity through
// the purchase-order flow instead.
func (uc *WarehouseUseCase) Upsert(productID string, in dto.UpsertWarehouseProductRequest) (*dto.WarehouseProductResponse, error) {
	if in.MinimumStockLevel < 0 || in.MaximumStockLevel < 0 || in.ReorderPoint < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	wp, err := uc.warehouseRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if wp == nil {
		wp = &entity.WarehouseProduct{
			ID:        uuid.New().String(),
			ProductID: productID,
			SKU:       product.SKU,
			CreatedAt: now,
		}
	}
	if in.SupplierID != "" {
		wp.SupplierID = in.SupplierID
	}
	if in.SKU != "" {
		wp.SKU = in.SKU
	}
	if in.BatchNumber != "" {
		wp.BatchNumber = in.BatchNumber
	}
	if in.QuantityInStock != nil {
		if *in.QuantityInStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		wp.QuantityInStock = *in.QuantityInStock
	}
	wp.MinimumStockLevel = in.MinimumStockLevel
	wp.MaximumStockLevel = in.MaximumStockLevel
	wp.ReorderPoint = in.ReorderPoint
	wp.UnitPrice = in.UnitPrice
	wp.UpdatedAt = now

	if err := uc.warehouseRepo.Upsert(wp); err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(wp)
	return &resp, nil
}

func toWarehouseResponse(wp *entity.WarehouseProduct) dto.WarehouseProductResponse {
	return dto.WarehouseProductResponse{
		ID:                wp.ID,
		ProductID:         wp.ProductID,
		SupplierID:        wp.SupplierID,
		SKU:               wp.SKU,
		QuantityInStock:   wp.QuantityInStock,
		MinimumStockLevel: wp.MinimumStockLevel,
		MaximumStockLevel: wp.MaximumStockLevel,
		ReorderPoint:      wp.ReorderPoint,
		UnitPrice:         wp.UnitPrice,
		NeedsReorder:      wp.NeedsReorder(),
	}
}
