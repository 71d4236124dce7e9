package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// ProductRepository defines the persistence port for Product and Category.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error

	CreateCategory(category *entity.Category) error
	ListCategories() ([]*entity.Category, error)
}
