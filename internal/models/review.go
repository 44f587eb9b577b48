package models

import "time"

type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	ProductID string    `json:"product_id" gorm:"type:uuid;index;not null"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductRating struct {
	ProductID     string  `json:"product_id"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}
