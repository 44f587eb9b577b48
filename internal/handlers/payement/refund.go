package pa

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/refund"
	"gorm.io/gorm"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

// RequestRefund permet à un utilisateur de demander un remboursement.
// POST /api/orders/:id/refund
func RequestRefund(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	var req struct {
		Reason string `json:"reason" binding:"required,min=10,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.UserID == nil || *order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
		return
	}

	// Éligibilité : commande expédiée ou livrée
	if order.Status != models.OrderStatusShipped && order.Status != models.OrderStatusDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cette commande n'est pas éligible au remboursement"})
		return
	}

	// Une seule demande ouverte par commande
	var existing models.RefundRequest
	err := database.DB.First(&existing, "order_id = ? AND status IN ?", orderID, models.OpenRefundStatuses).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Une demande de remboursement existe déjà pour cette commande"})
		return
	}

	request := models.RefundRequest{
		ID:           uuid.NewString(),
		OrderID:      order.ID,
		UserID:       userID,
		Reason:       req.Reason,
		Status:       models.RefundStatusPending,
		RefundAmount: order.TotalPrice,
		CreatedAt:    time.Now(),
	}
	if err := database.DB.Create(&request).Error; err != nil {
		log.Printf("❌ Erreur création demande remboursement: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création demande"})
		return
	}

	log.Printf("💰 Demande de remboursement créée: %s pour commande %s", request.ID, order.OrderNumber)
	c.JSON(http.StatusCreated, gin.H{"message": "Demande de remboursement créée", "refund": request})
}

// GetRefunds liste les demandes de remboursement (admin).
// GET /api/admin/refunds?status=pending
func GetRefunds(c *gin.Context) {
	query := database.DB.Order("created_at DESC").Limit(100)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var refunds []models.RefundRequest
	if err := query.Find(&refunds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération demandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"refunds": refunds, "count": len(refunds)})
}

// ProcessRefund traite une demande de remboursement (admin).
// POST /api/admin/refunds/:id/process
func ProcessRefund(c *gin.Context) {
	adminEmail := c.GetString("email")
	refundID := c.Param("id")

	var req struct {
		Action string `json:"action" binding:"required"` // approve ou reject
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if req.Action != "approve" && req.Action != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action invalide (approve ou reject)"})
		return
	}

	var request models.RefundRequest
	if err := database.DB.First(&request, "id = ?", refundID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Demande de remboursement introuvable"})
		return
	}
	if request.Status != models.RefundStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cette demande a déjà été traitée"})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", request.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	now := time.Now()

	if req.Action == "reject" {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&request).Updates(map[string]interface{}{
				"status":     models.RefundStatusRejected,
				"updated_at": now,
			}).Error; err != nil {
				return err
			}
			return utils.CreateNotification(tx, order.ID, order.UserID,
				models.NotificationRefundDecision,
				"Demande de remboursement refusée",
				"Votre demande de remboursement pour la commande "+order.OrderNumber+" a été refusée. "+req.Note)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur traitement de la demande"})
			return
		}

		log.Printf("❌ Remboursement refusé pour %s", order.OrderNumber)
		c.JSON(http.StatusOK, gin.H{"message": "Demande refusée"})
		return
	}

	// Approbation : remboursement Stripe puis transition de la commande.
	if order.PaymentIntentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Commande sans paiement Stripe associé"})
		return
	}

	stripeRefund, err := refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(order.PaymentIntentID),
	})
	if err != nil {
		log.Printf("❌ Erreur remboursement Stripe pour %s: %v", order.OrderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur remboursement Stripe"})
		return
	}

	oldStatus := order.Status
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Updates(map[string]interface{}{
			"status":           models.RefundStatusCompleted,
			"stripe_refund_id": stripeRefund.ID,
			"updated_at":       now,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"status":     models.OrderStatusReturned,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}

		if err := utils.RecordStatusChange(tx, order.ID, oldStatus, models.OrderStatusReturned,
			models.UserActor(adminEmail), "Remboursement approuvé: "+request.Reason); err != nil {
			return err
		}

		return utils.CreateNotification(tx, order.ID, order.UserID,
			models.NotificationRefundDecision,
			"Remboursement approuvé",
			"Votre remboursement pour la commande "+order.OrderNumber+" a été approuvé. Les fonds seront crédités sous 5-10 jours ouvrés.")
	})
	if err != nil {
		// Le remboursement Stripe est parti mais pas l'état local : à
		// réconcilier manuellement via le dashboard Stripe.
		log.Printf("❌ Remboursement Stripe %s effectué mais mise à jour locale échouée: %v", stripeRefund.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour après remboursement"})
		return
	}

	log.Printf("✅ Remboursement approuvé pour %s (%s)", order.OrderNumber, stripeRefund.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Remboursement effectué", "stripe_refund_id": stripeRefund.ID})
}
