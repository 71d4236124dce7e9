package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/application/notifications"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

// StoreUseCase store CRUD plus per-store stock listing and pricing.
type StoreUseCase struct {
	storeRepo   repository.StoreRepository
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	alerts      *notifications.StockAlertService
}

// NewStoreUseCase builds the use case. alerts may be nil in contexts that
// never mutate quantities.
func NewStoreUseCase(
	storeRepo repository.StoreRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	alerts *notifications.StockAlertService,
) *StoreUseCase {
	return &StoreUseCase{storeRepo: storeRepo, stockRepo: stockRepo, productRepo: productRepo, alerts: alerts}
}

// Create registers a store.
func (uc *StoreUseCase) Create(in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		ManagerID: in.ManagerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.storeRepo.Create(s); err != nil {
		return nil, err
	}
	return toStoreResponse(s), nil
}

// GetByID returns one store.
func (uc *StoreUseCase) GetByID(id string) (*dto.StoreResponse, error) {
	s, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(s), nil
}

// List returns a page of stores.
func (uc *StoreUseCase) List(page dto.PageRequest) ([]dto.StoreResponse, error) {
	page.DefaultPage()
	list, err := uc.storeRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

// Update applies the non-empty fields of the request.
func (uc *StoreUseCase) Update(id string, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	s, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		s.Name = in.Name
	}
	if in.Address != "" {
		s.Address = in.Address
	}
	if in.Phone != "" {
		s.Phone = in.Phone
	}
	if in.ManagerID != "" {
		s.ManagerID = in.ManagerID
	}
	s.UpdatedAt = time.Now()
	if err := uc.storeRepo.Update(s); err != nil {
		return nil, err
	}
	return toStoreResponse(s), nil
}

// Delete removes a store.
func (uc *StoreUseCase) Delete(id string) error {
	s, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.storeRepo.Delete(id)
}

// ListStock returns the store's stock rows.
func (uc *StoreUseCase) ListStock(storeID string, page dto.PageRequest) ([]dto.StockResponse, error) {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	rows, err := uc.stockRepo.ListByStore(storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toStockResponse(r))
	}
	return out, nil
}

// UpdateStockPricing sets the selling price and/or low-stock threshold of an
// existing row. Lowering the threshold can move the row out of the low state;
// the alert service only reacts to quantity changes, so no alert fires here.
func (uc *StoreUseCase) UpdateStockPricing(storeID, productID string, in dto.UpdateStockPricingRequest) (*dto.StockResponse, error) {
	if in.SellingPrice == nil && in.LowStockThreshold == nil {
		return nil, domain.ErrInvalidInput
	}
	row, err := uc.stockRepo.Get(productID, storeID)
	if err != nil {
		return nil, err
	}
	if row.UpdatedAt.IsZero() {
		// Get returns a zero-value row when none exists.
		return nil, domain.ErrNotFound
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		row.SellingPrice = *in.SellingPrice
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		row.LowStockThreshold = *in.LowStockThreshold
	}
	row.UpdatedAt = time.Now()
	if err := uc.stockRepo.Upsert(row); err != nil {
		return nil, err
	}
	resp := toStockResponse(row)
	return &resp, nil
}

// RecordSale decrements a store row after a counter sale and raises a
// low-stock alert when the update crosses the threshold downward.
func (uc *StoreUseCase) RecordSale(ctx context.Context, storeID, productID string, quantity int64) (*dto.StockResponse, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	row, err := uc.stockRepo.Get(productID, storeID)
	if err != nil {
		return nil, err
	}
	if row.Quantity < quantity {
		return nil, domain.ErrInsufficientStock
	}
	before := *row
	row.Quantity -= quantity
	row.UpdatedAt = time.Now()
	if err := uc.stockRepo.Upsert(row); err != nil {
		return nil, err
	}

	if uc.alerts != nil {
		productName := productID
		if p, err := uc.productRepo.GetByID(productID); err == nil && p != nil {
			productName = p.Name
		}
		storeName := storeID
		if s, err := uc.storeRepo.GetByID(storeID); err == nil && s != nil {
			storeName = s.Name
		}
		uc.alerts.OnStockUpdated(ctx, &before, row, productName, storeName)
	}

	resp := toStockResponse(row)
	return &resp, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		ManagerID: s.ManagerID,
		CreatedAt: s.CreatedAt,
	}
}

func toStockResponse(s *entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		ProductID:         s.ProductID,
		StoreID:           s.StoreID,
		Quantity:          s.Quantity,
		LowStockThreshold: s.LowStockThreshold,
		SellingPrice:      s.SellingPrice,
		Low:               s.IsLow(),
		UpdatedAt:         s.UpdatedAt,
	}
}
