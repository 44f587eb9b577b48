package models

import "time"

// POSSale : vente en magasin, rattachée à une commande créée directement
// au statut delivered.
type POSSale struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID   string    `json:"order_id" gorm:"type:uuid;uniqueIndex;not null"`
	Register  string    `json:"register"`
	CashierID string    `json:"cashier_id" gorm:"type:uuid"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
