package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/service"
)

// GET /api/products/search?q=...
// Recherche Elasticsearch, avec repli en LIKE si le cluster est absent.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q manquant"})
		return
	}

	if database.Elastic != nil {
		results, err := service.SearchProducts(query)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results), "engine": "elasticsearch"})
			return
		}
		// On retombe sur le LIKE plutôt que d'échouer la recherche
	}

	var products []models.Product
	like := "%" + query + "%"
	if err := database.DB.Where("is_active = ?", true).
		Where("name LIKE ? OR description LIKE ? OR tags LIKE ?", like, like, like).
		Limit(50).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": products, "count": len(products), "engine": "sql"})
}
