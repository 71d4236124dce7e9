package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

// SupplierUseCase supplier directory and per-supplier catalogs.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase builds the use case.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// Create registers a supplier.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		ContactName: in.ContactName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.supplierRepo.Create(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID returns one supplier.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// List returns a page of suppliers.
func (uc *SupplierUseCase) List(page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.DefaultPage()
	list, err := uc.supplierRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// AddProduct adds an entry to a supplier's catalog.
func (uc *SupplierUseCase) AddProduct(supplierID string, in dto.CreateSupplierProductRequest) (*dto.SupplierProductResponse, error) {
	if in.ProductName == "" || in.StockQuantity < 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	sp := &entity.SupplierProduct{
		ID:            uuid.New().String(),
		SupplierID:    supplierID,
		ProductName:   in.ProductName,
		Description:   in.Description,
		UnitPrice:     in.UnitPrice,
		StockQuantity: in.StockQuantity,
		Available:     true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.supplierRepo.CreateProduct(sp); err != nil {
		return nil, err
	}
	return toSupplierProductResponse(sp), nil
}

// ListProducts returns a supplier's catalog.
func (uc *SupplierUseCase) ListProducts(supplierID string) ([]dto.SupplierProductResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.supplierRepo.ListProducts(supplierID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierProductResponse, 0, len(list))
	for _, sp := range list {
		out = append(out, *toSupplierProductResponse(sp))
	}
	return out, nil
}

// UpdateProductQuantity sets the reported on-hand quantity of one entry.
func (uc *SupplierUseCase) UpdateProductQuantity(id string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidInput
	}
	return uc.supplierRepo.UpdateProductQuantity(id, quantity)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		ContactName: s.ContactName,
		CreatedAt:   s.CreatedAt,
	}
}

func toSupplierProductResponse(sp *entity.SupplierProduct) *dto.SupplierProductResponse {
	return &dto.SupplierProductResponse{
		ID:            sp.ID,
		SupplierID:    sp.SupplierID,
		ProductName:   sp.ProductName,
		Description:   sp.Description,
		UnitPrice:     sp.UnitPrice,
		StockQuantity: sp.StockQuantity,
		Available:     sp.Available,
	}
}
