package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is applied to new Stock rows when the store
// manager does not set one.
const DefaultLowStockThreshold = 10

// Stock tracks the quantity of a product at a store. One row per
// (product, store) pair; mutated by sales and by request fulfillment.
type Stock struct {
	ProductID         string
	StoreID           string
	Quantity          int64
	LowStockThreshold int64
	SellingPrice      decimal.Decimal
	UpdatedAt         time.Time
}

// IsLow reports whether the quantity sits at or below the alert threshold.
func (s *Stock) IsLow() bool {
	return s.Quantity <= s.LowStockThreshold
}
