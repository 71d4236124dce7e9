package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// WarehouseProductRepository defines the port for warehouse-side inventory
// records. The ForUpdate variant locks the row for transactional mutation.
type WarehouseProductRepository interface {
	GetByID(id string) (*entity.WarehouseProduct, error)
	GetByProduct(productID string) (*entity.WarehouseProduct, error)
	GetByProductForUpdate(productID string) (*entity.WarehouseProduct, error)
	Upsert(wp *entity.WarehouseProduct) error
	List(limit, offset int) ([]*entity.WarehouseProduct, error)
	ListBelowReorderPoint() ([]*entity.WarehouseProduct, error)
}
