package models

import "time"

// Statuts du cycle de vie d'une commande.
const (
	OrderStatusPending             = "pending"
	OrderStatusConfirmed           = "confirmed"
	OrderStatusProcessing          = "processing"
	OrderStatusShipped             = "shipped"
	OrderStatusDelivered           = "delivered"
	OrderStatusCancelled           = "cancelled"
	OrderStatusReturned            = "returned"
	OrderStatusPendingCancellation = "pending_cancellation"
)

// ValidOrderStatus vérifie qu'un statut fait partie du cycle de vie.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
		OrderStatusReturned, OrderStatusPendingCancellation:
		return true
	}
	return false
}

type Order struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid"`
	OrderNumber   string     `json:"order_number" gorm:"uniqueIndex;not null"`
	UserID        *string    `json:"user_id,omitempty" gorm:"type:uuid;index"`
	CustomerEmail string     `json:"customer_email"`
	Status        string     `json:"status" gorm:"index;not null;default:pending"`
	TotalPrice    float64    `json:"total_price"`
	// Référence Stripe posée par le checkout (hors de ce dépôt), utilisée
	// pour les remboursements.
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
	ShippedAt     *time.Time `json:"shipped_at,omitempty" gorm:"index"`
	// Invariant : renseigné uniquement lors du passage au statut delivered.
	DeliveredAt *time.Time  `json:"delivered_at,omitempty"`
	Items       []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID   string  `json:"order_id" gorm:"type:uuid;index;not null"`
	ProductID string  `json:"product_id" gorm:"type:uuid"`
	Name      string  `json:"name"` // snapshot au moment de la commande
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
