package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// UserRepository defines the persistence port for User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ListByRole(role string) ([]*entity.User, error)
	Update(user *entity.User) error
}
