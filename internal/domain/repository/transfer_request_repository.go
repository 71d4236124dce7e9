package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// TransferRequestRepository defines the port for store-to-store transfer
// requests. Create assigns the sequential request number (TRF-XXXXXX).
type TransferRequestRepository interface {
	Create(t *entity.StoreStockTransferRequest) error
	GetByID(id string) (*entity.StoreStockTransferRequest, error)
	GetByIDForUpdate(id string) (*entity.StoreStockTransferRequest, error)
	Update(t *entity.StoreStockTransferRequest) error
	ListByStore(storeID string, limit, offset int) ([]*entity.StoreStockTransferRequest, error)
	ListByStatus(status string, limit, offset int) ([]*entity.StoreStockTransferRequest, error)
	List(limit, offset int) ([]*entity.StoreStockTransferRequest, error)
}
