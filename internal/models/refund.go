package models

import "time"

// Statuts d'une demande de remboursement.
const (
	RefundStatusPending   = "pending"
	RefundStatusApproved  = "approved"
	RefundStatusRejected  = "rejected"
	RefundStatusCompleted = "completed"
)

// OpenRefundStatuses : une demande dans l'un de ces états bloque
// l'auto-livraison de la commande associée.
var OpenRefundStatuses = []string{RefundStatusPending, RefundStatusApproved}

type RefundRequest struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID        string     `json:"order_id" gorm:"type:uuid;index;not null"`
	UserID         string     `json:"user_id" gorm:"type:uuid"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status" gorm:"index;default:pending"`
	RefundAmount   float64    `json:"refund_amount"`
	StripeRefundID string     `json:"stripe_refund_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
