package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// GET /api/categories
func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération catégories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// POST /api/categories (admin)
func CreateCategory(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	category := models.Category{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Cette catégorie existe déjà"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DELETE /api/categories/:id (admin)
func DeleteCategory(c *gin.Context) {
	res := database.DB.Delete(&models.Category{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}
