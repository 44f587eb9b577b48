package product

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/service"
)

// GET /api/products
func GetProducts(c *gin.Context) {
	var products []models.Product
	query := database.DB.Where("is_active = ?", true)

	if categoryID := c.Query("category"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Order("created_at DESC").Limit(100).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GET /api/products/:id
func GetProductByID(c *gin.Context) {
	var product models.Product
	if err := database.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /api/products (admin)
func CreateProduct(c *gin.Context) {
	var input struct {
		Name              string  `json:"name" binding:"required"`
		Description       string  `json:"description"`
		Price             float64 `json:"price" binding:"required,gt=0"`
		Stock             int     `json:"stock"`
		LowStockThreshold int     `json:"low_stock_threshold"`
		SKU               string  `json:"sku" binding:"required"`
		CategoryID        *string `json:"category_id"`
		Tags              string  `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	product := models.Product{
		ID:                uuid.NewString(),
		Name:              input.Name,
		Description:       input.Description,
		Price:             input.Price,
		Stock:             input.Stock,
		LowStockThreshold: input.LowStockThreshold,
		SKU:               input.SKU,
		CategoryID:        input.CategoryID,
		Tags:              input.Tags,
		IsActive:          true,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	// Indexation asynchrone pour la recherche
	go service.IndexProduct(product)

	c.JSON(http.StatusCreated, product)
}

// PUT /api/products/:id (admin)
func UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := database.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		Tags        *string  `json:"tags"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Stock != nil {
		updates["stock"] = *input.Stock
	}
	if input.Tags != nil {
		updates["tags"] = *input.Tags
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	go service.IndexProduct(product)

	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/:id (admin) — désactivation, jamais de suppression
// physique : les commandes passées référencent le produit.
func DeleteProduct(c *gin.Context) {
	res := database.DB.Model(&models.Product{}).
		Where("id = ?", c.Param("id")).
		Update("is_active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit désactivé"})
}
