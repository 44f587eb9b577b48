package user

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// Le panier vit dans Redis sous la clé cart:<user_id>.

// GET /api/cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart := readCart(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"items": cart, "total": cartTotal(cart), "count": len(cart)})
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	// Le prix et le nom viennent du catalogue, jamais du client
	var product models.Product
	if err := database.DB.First(&product, "id = ? AND is_active = ?", input.ProductID, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if product.Stock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock insuffisant"})
		return
	}

	ctx := c.Request.Context()
	cart := readCart(ctx, userID)

	found := false
	for i := range cart {
		if cart[i].ProductID == product.ID {
			cart[i].Quantity += input.Quantity
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  input.Quantity,
		})
	}

	if err := writeCart(ctx, userID, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cart, "total": cartTotal(cart), "count": len(cart)})
}

// DELETE /api/cart/items/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	ctx := c.Request.Context()
	cart := readCart(ctx, userID)

	kept := cart[:0]
	for _, item := range cart {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := writeCart(ctx, userID, kept); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": kept, "total": cartTotal(kept), "count": len(kept)})
}

// DELETE /api/cart
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := database.Redis.Del(c.Request.Context(), "cart:"+userID).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vidage panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}, "total": 0, "count": 0})
}

func readCart(ctx context.Context, userID string) []models.CartItem {
	data, err := database.Redis.Get(ctx, "cart:"+userID).Result()
	if err != nil || data == "" {
		return []models.CartItem{}
	}

	var cart []models.CartItem
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return []models.CartItem{}
	}
	return cart
}

func writeCart(ctx context.Context, userID string, cart []models.CartItem) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, "cart:"+userID, data, 0).Err()
}

func cartTotal(cart []models.CartItem) float64 {
	total := 0.0
	for _, item := range cart {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
