package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// GET /api/products/:id/reviews
func GetReviews(c *gin.Context) {
	productID := c.Param("id")

	var reviews []models.Review
	if err := database.DB.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération avis"})
		return
	}

	rating := models.ProductRating{ProductID: productID, TotalReviews: len(reviews)}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		rating.AverageRating = float64(sum) / float64(len(reviews))
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "rating": rating})
}

// POST /api/products/:id/reviews
func CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("id")

	var input struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment" binding:"max=2000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// Un seul avis par utilisateur et par produit
	var existing models.Review
	if err := database.DB.First(&existing, "product_id = ? AND user_id = ?", productID, userID).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Vous avez déjà laissé un avis sur ce produit"})
		return
	}

	var account models.User
	database.DB.First(&account, "id = ?", userID)

	review := models.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		UserName:  account.Name,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := database.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création avis"})
		return
	}

	c.JSON(http.StatusCreated, review)
}
