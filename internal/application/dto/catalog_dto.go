package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body for POST /api/v1/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	CategoryID  string          `json:"category_id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	BatchNumber string          `json:"batch_number,omitempty"`
}

// UpdateProductRequest body for PUT /api/v1/products/:id.
type UpdateProductRequest struct {
	Name        string           `json:"name,omitempty"`
	CategoryID  string           `json:"category_id,omitempty"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// ProductResponse public view of a product.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	CategoryID  string          `json:"category_id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	BatchNumber string          `json:"batch_number,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse paginated products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}

// CreateCategoryRequest body for POST /api/v1/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse public view of a category.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateStoreRequest body for POST /api/v1/stores.
type CreateStoreRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	ManagerID string `json:"manager_id,omitempty"`
}

// StoreResponse public view of a store.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	ManagerID string    `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StockResponse a per-store stock row.
type StockResponse struct {
	ProductID         string          `json:"product_id"`
	StoreID           string          `json:"store_id"`
	Quantity          int64           `json:"quantity"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	Low               bool            `json:"low"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// UpdateStockPricingRequest body for PUT /api/v1/stores/:id/stock/:productId.
type UpdateStockPricingRequest struct {
	SellingPrice      *decimal.Decimal `json:"selling_price,omitempty"`
	LowStockThreshold *int64           `json:"low_stock_threshold,omitempty"`
}

// WarehouseProductResponse the warehouse-side record.
type WarehouseProductResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	SupplierID        string          `json:"supplier_id,omitempty"`
	SKU               string          `json:"sku"`
	QuantityInStock   int64           `json:"quantity_in_stock"`
	MinimumStockLevel int64           `json:"minimum_stock_level"`
	MaximumStockLevel int64           `json:"maximum_stock_level"`
	ReorderPoint      int64           `json:"reorder_point"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	NeedsReorder      bool            `json:"needs_reorder"`
}

// UpsertWarehouseProductRequest body for PUT /api/v1/warehouse/products/:productId.
type UpsertWarehouseProductRequest struct {
	SupplierID        string          `json:"supplier_id,omitempty"`
	SKU               string          `json:"sku,omitempty"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	QuantityInStock   *int64          `json:"quantity_in_stock,omitempty"`
	MinimumStockLevel int64           `json:"minimum_stock_level"`
	MaximumStockLevel int64           `json:"maximum_stock_level"`
	ReorderPoint      int64           `json:"reorder_point"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

// CreateSupplierRequest body for POST /api/v1/suppliers.
type CreateSupplierRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ContactName string `json:"contact_name"`
}

// SupplierResponse public view of a supplier.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	ContactName string    `json:"contact_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSupplierProductRequest body for POST /api/v1/suppliers/:id/products.
type CreateSupplierProductRequest struct {
	ProductName   string          `json:"product_name"`
	Description   string          `json:"description"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int64           `json:"stock_quantity"`
}

// SupplierProductResponse a supplier catalog entry.
type SupplierProductResponse struct {
	ID            string          `json:"id"`
	SupplierID    string          `json:"supplier_id"`
	ProductName   string          `json:"product_name"`
	Description   string          `json:"description"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int64           `json:"stock_quantity"`
	Available     bool            `json:"available"`
}

// DropdownProduct one option for the restock/transfer dropdowns.
type DropdownProduct struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku,omitempty"`
	StoreID     string `json:"store_id,omitempty"`   // transfer dropdown only
	StoreName   string `json:"store_name,omitempty"` // transfer dropdown only
	Quantity    int64  `json:"quantity,omitempty"`
}
