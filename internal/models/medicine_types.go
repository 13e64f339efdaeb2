package models

import "time"

// Medicine is the model for the 'medicines' table.
// Optional columns are pointers so the JSON stays clean.
type Medicine struct {
	ID                int64      `json:"id" db:"id"`
	Name              string     `json:"name" db:"name"`
	Slug              string     `json:"slug" db:"slug"`
	Category          string     `json:"category" db:"category"`
	Price             float64    `json:"price" db:"price"`
	Stock             int        `json:"stock" db:"stock"`
	LowStockThreshold int        `json:"lowStockThreshold" db:"low_stock_threshold"`
	Image             *string    `json:"image,omitempty" db:"image"`
	Description       *string    `json:"description,omitempty" db:"description"`
	Manufacturer      *string    `json:"manufacturer,omitempty" db:"manufacturer"`
	ExpiryDate        *time.Time `json:"expiryDate,omitempty" db:"expiry_date"`
	UsedFor           *string    `json:"usedFor,omitempty" db:"used_for"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}
