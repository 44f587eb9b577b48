package models

import "time"

type User struct {
	ID        string    `json:"user_id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-"`
	Role      string    `json:"role,omitempty" gorm:"default:customer"` // customer, support, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
