package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// GET /api/admin/settings
func GetSettings(c *gin.Context) {
	var settings []models.StoreSetting
	if err := database.DB.Order("key ASC").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération paramètres"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// PUT /api/admin/settings
func UpdateSettings(c *gin.Context) {
	adminEmail := c.GetString("email")

	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil || len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	now := time.Now()
	for key, value := range input {
		setting := models.StoreSetting{
			Key:       key,
			Value:     value,
			UpdatedBy: adminEmail,
			UpdatedAt: now,
		}
		if err := database.DB.Save(&setting).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde paramètre " + key})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Paramètres mis à jour", "updated": len(input)})
}
