package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseProduct is the warehouse-side inventory record for a product,
// distinct from the per-store Stock row. Mutated by purchase-order delivery
// and by restock-request approval.
type WarehouseProduct struct {
	ID                string
	ProductID         string
	SupplierID        string
	SKU               string
	BatchNumber       string
	QuantityInStock   int64
	MinimumStockLevel int64
	MaximumStockLevel int64
	ReorderPoint      int64
	UnitPrice         decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NeedsReorder reports whether the on-hand quantity has fallen to the
// reorder point.
func (w *WarehouseProduct) NeedsReorder() bool {
	return w.QuantityInStock <= w.ReorderPoint
}
