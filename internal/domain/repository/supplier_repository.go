package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// SupplierRepository defines the port for suppliers and their catalogs.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)

	CreateProduct(sp *entity.SupplierProduct) error
	ListProducts(supplierID string) ([]*entity.SupplierProduct, error)
	// ListProductsAtOrBelow returns catalog entries whose stock_quantity is at
	// or below the given threshold, across all suppliers when supplierID is
	// empty. Used by the stock notification scanner.
	ListProductsAtOrBelow(supplierID string, threshold int64) ([]*entity.SupplierProduct, error)
	UpdateProductQuantity(id string, quantity int64) error
}
