package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// RestockRequestRepository defines the port for restock requests. Create
// assigns the sequential request number (RST-XXXXXX) from the database so
// concurrent writers can never collide. The ForUpdate variant locks the row
// so a review decision is serialized with any concurrent decision.
type RestockRequestRepository interface {
	Create(r *entity.RestockRequest) error
	GetByID(id string) (*entity.RestockRequest, error)
	GetByIDForUpdate(id string) (*entity.RestockRequest, error)
	Update(r *entity.RestockRequest) error
	ListByStore(storeID string, limit, offset int) ([]*entity.RestockRequest, error)
	ListByStatus(status string, limit, offset int) ([]*entity.RestockRequest, error)
	List(limit, offset int) ([]*entity.RestockRequest, error)
}
