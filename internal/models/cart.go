package models

// CartItem vit dans Redis (clé cart:<user_id>), jamais en base.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
