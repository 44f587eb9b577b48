package admin

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

// GET /api/admin/orders?status=shipped
func GetOrders(c *gin.Context) {
	query := database.DB.Preload("Items").Order("created_at DESC").Limit(100)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// POST /api/admin/orders/:id/status
// Transition manuelle de statut : journal + notification + email, le tout
// dans une transaction (sauf l'email, fire-and-forget).
func UpdateOrderStatus(c *gin.Context) {
	adminEmail := c.GetString("email")
	orderID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu"})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if order.Status == req.Status {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La commande est déjà dans ce statut"})
		return
	}

	now := time.Now()
	oldStatus := order.Status

	updates := map[string]interface{}{
		"status":     req.Status,
		"updated_at": now,
	}
	// delivered_at n'est renseigné que lors du passage à delivered
	switch req.Status {
	case models.OrderStatusShipped:
		updates["shipped_at"] = now
	case models.OrderStatusDelivered:
		updates["delivered_at"] = now
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return err
		}

		reason := req.Reason
		if reason == "" {
			reason = "Mise à jour manuelle du statut"
		}
		if err := utils.RecordStatusChange(tx, order.ID, oldStatus, req.Status,
			models.UserActor(adminEmail), reason); err != nil {
			return err
		}

		if order.UserID != nil {
			return utils.CreateNotification(tx, order.ID, order.UserID,
				models.NotificationOrderStatus,
				"Commande "+order.OrderNumber+" : "+req.Status,
				"Le statut de votre commande "+order.OrderNumber+" est passé de "+oldStatus+" à "+req.Status+".")
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ Erreur transition %s → %s pour %s: %v", oldStatus, req.Status, order.OrderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du statut"})
		return
	}

	utils.SendOrderStatusEmail(order, req.Status)

	log.Printf("✅ Commande %s : %s → %s (par %s)", order.OrderNumber, oldStatus, req.Status, adminEmail)
	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour", "old_status": oldStatus, "new_status": req.Status})
}

// GET /api/admin/orders/:id/history — journal append-only d'une commande.
func GetOrderHistory(c *gin.Context) {
	orderID := c.Param("id")

	var order models.Order
	if err := database.DB.First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	entries, err := utils.OrderHistory(database.DB, orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération historique"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_number": order.OrderNumber, "history": entries})
}
