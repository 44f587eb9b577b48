package models

import "time"

// Types de notifications client.
const (
	NotificationDeliveryConfirmation = "delivery_confirmation"
	NotificationOrderStatus          = "order_status"
	NotificationRefundDecision       = "refund_decision"
)

// DeliveryNotification est écrite par le backend et relue par le
// collecteur d'emails ; seuls is_read et email_sent sont mutables.
type DeliveryNotification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID   string    `json:"order_id" gorm:"type:uuid;index;not null"`
	UserID    *string   `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Type      string    `json:"type" gorm:"index;not null"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	EmailSent bool      `json:"email_sent" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
