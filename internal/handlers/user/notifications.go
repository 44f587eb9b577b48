package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// GET /api/notifications
func GetMyNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

	var notifs []models.DeliveryNotification
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération notifications"})
		return
	}

	unread := 0
	for _, n := range notifs {
		if !n.IsRead {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifs, "unread": unread})
}

// POST /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	userID := c.GetString("user_id")
	notifID := c.Param("id")

	res := database.DB.Model(&models.DeliveryNotification{}).
		Where("id = ? AND user_id = ?", notifID, userID).
		Update("is_read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification lue"})
}
