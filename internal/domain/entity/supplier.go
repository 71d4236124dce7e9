package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is an external vendor the warehouse orders from.
type Supplier struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Address      string
	ContactName  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SupplierProduct is an entry in a supplier's catalog with the quantity the
// supplier reports on hand. Scanned by the stock notification service.
type SupplierProduct struct {
	ID            string
	SupplierID    string
	ProductName   string
	Description   string
	UnitPrice     decimal.Decimal
	StockQuantity int64
	Available     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
