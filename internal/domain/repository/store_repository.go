package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// StoreRepository defines the persistence port for Store.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	List(limit, offset int) ([]*entity.Store, error)
	Update(store *entity.Store) error
	Delete(id string) error
}
