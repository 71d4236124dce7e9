package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products ("Cement", "Steel", ...).
type Category struct {
	ID          string
	Name        string
	Description string
}

// Product is a catalog entry. Per-store quantities and selling prices live in
// Stock; the warehouse-side record is WarehouseProduct.
type Product struct {
	ID          string
	CategoryID  string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal // base catalog price
	BatchNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
