package models

import "time"

type Product struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name              string    `json:"name" gorm:"not null;index"`
	Description       string    `json:"description"`
	Price             float64   `json:"price" gorm:"not null"`
	Stock             int       `json:"stock"`
	LowStockThreshold int       `json:"low_stock_threshold" gorm:"default:5"`
	SKU               string    `json:"sku" gorm:"uniqueIndex"`
	CategoryID        *string   `json:"category_id,omitempty" gorm:"type:uuid;index"`
	Tags              string    `json:"tags"` // séparés par des virgules
	IsActive          bool      `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
