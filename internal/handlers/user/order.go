package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

// GET /api/orders — toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var orders []models.Order
	err := database.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		log.Println("❌ Erreur récupération commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	var order models.Order
	// Sécurité : on vérifie que la commande appartient bien à l'utilisateur
	err := database.DB.Preload("Items").
		First(&order, "id = ? AND user_id = ?", orderID, userID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// POST /api/orders/:id/confirm-delivery
// Pendant manuel de l'auto-livraison : même transition conditionnelle,
// même journal, mais avec l'utilisateur comme acteur.
func ConfirmDelivery(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	orderID := c.Param("id")

	var order models.Order
	if err := database.DB.First(&order, "id = ? AND user_id = ?", orderID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.Status != models.OrderStatusShipped {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seule une commande expédiée peut être confirmée comme livrée"})
		return
	}

	now := time.Now()
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ? AND delivered_at IS NULL", order.ID, models.OrderStatusShipped).
			Updates(map[string]interface{}{
				"status":       models.OrderStatusDelivered,
				"delivered_at": now,
				"updated_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Déjà livrée (auto-livraison concurrente) : rien à refaire.
			return nil
		}

		return utils.RecordStatusChange(tx, order.ID,
			models.OrderStatusShipped, models.OrderStatusDelivered,
			models.UserActor(email), "Livraison confirmée par le client")
	})
	if err != nil {
		log.Printf("❌ Erreur confirmation livraison %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur confirmation de livraison"})
		return
	}

	log.Printf("✅ Livraison confirmée par le client pour %s", order.OrderNumber)
	c.JSON(http.StatusOK, gin.H{"message": "Livraison confirmée", "order_id": order.ID})
}
