package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// PurchaseOrderRepository defines the port for purchase orders and their
// items. Create persists the order with its items and assigns the order
// number (PO-XXXXXX) from a sequence.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	GetItems(orderID string) ([]*entity.PurchaseOrderItem, error)
	Update(order *entity.PurchaseOrder) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
