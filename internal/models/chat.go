package models

import "time"

type ChatMessage struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID     string    `json:"user_id" gorm:"type:uuid;index;not null"`
	SenderRole string    `json:"sender_role"` // customer ou support
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
