package entity

import "time"

// Store represents a retail location with its own stock records.
type Store struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	ManagerID string // user with role store_manager, may be empty
	CreatedAt time.Time
	UpdatedAt time.Time
}
