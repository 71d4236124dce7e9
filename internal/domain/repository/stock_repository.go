package repository

import "github.com/ezm-trade/trade-api/internal/domain/entity"

// StockAvailability is a row for the transfer dropdown: a product held with
// positive quantity at a store other than the requester's.
type StockAvailability struct {
	ProductID   string
	ProductName string
	StoreID     string
	StoreName   string
	Quantity    int64
}

// StockRepository defines the port for per-store stock rows. The ForUpdate
// variant locks the row and is only meaningful inside a transaction.
type StockRepository interface {
	Get(productID, storeID string) (*entity.Stock, error)
	GetForUpdate(productID, storeID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByStore(storeID string, limit, offset int) ([]*entity.Stock, error)
	// ListAvailableElsewhere lists products with quantity > 0 at stores other
	// than excludeStoreID (transfer dropdown policy).
	ListAvailableElsewhere(excludeStoreID string) ([]StockAvailability, error)
}
