package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin        = "admin"
	RoleHeadManager  = "head_manager"
	RoleStoreManager = "store_manager"
	RoleCashier      = "cashier"
	RoleSupplier     = "supplier"
)

// User represents an account in the system. StoreID is set for store managers
// and cashiers; SupplierID for supplier accounts.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persisting
	Name         string
	Role         string
	StoreID      string // empty unless role is store_manager or cashier
	SupplierID   string // empty unless role is supplier
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
