package pos

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

// CreateSale enregistre une vente en magasin : la commande est créée
// directement au statut delivered, avec sa ligne de journal.
// POST /api/pos/sales
func CreateSale(c *gin.Context) {
	cashierID := c.GetString("user_id")
	cashierEmail := c.GetString("email")

	var input struct {
		Register string `json:"register" binding:"required"`
		Items    []struct {
			ProductID string `json:"product_id" binding:"required"`
			Quantity  int    `json:"quantity" binding:"required,gt=0"`
		} `json:"items" binding:"required,min=1"`
		CustomerEmail string `json:"customer_email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	now := time.Now()
	orderID := uuid.NewString()
	orderNumber := "POS-" + strings.ToUpper(orderID[:8])

	var sale models.POSSale
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		total := 0.0
		items := make([]models.OrderItem, 0, len(input.Items))

		for _, in := range input.Items {
			var product models.Product
			if err := tx.First(&product, "id = ? AND is_active = ?", in.ProductID, true).Error; err != nil {
				return fmt.Errorf("produit %s introuvable", in.ProductID)
			}
			if product.Stock < in.Quantity {
				return fmt.Errorf("stock insuffisant pour %s", product.Name)
			}

			if err := tx.Model(&product).Update("stock", gorm.Expr("stock - ?", in.Quantity)).Error; err != nil {
				return err
			}

			items = append(items, models.OrderItem{
				ID:        uuid.NewString(),
				OrderID:   orderID,
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  in.Quantity,
			})
			total += product.Price * float64(in.Quantity)
		}

		order := models.Order{
			ID:            orderID,
			OrderNumber:   orderNumber,
			CustomerEmail: input.CustomerEmail,
			Status:        models.OrderStatusDelivered,
			TotalPrice:    total,
			DeliveredAt:   &now,
			Items:         items,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := utils.RecordStatusChange(tx, orderID, models.OrderStatusPending,
			models.OrderStatusDelivered, models.UserActor(cashierEmail),
			"Vente en magasin (caisse "+input.Register+")"); err != nil {
			return err
		}

		sale = models.POSSale{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			Register:  input.Register,
			CashierID: cashierID,
			Total:     total,
			CreatedAt: now,
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		log.Printf("❌ Erreur vente POS: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("🧾 Vente POS %s enregistrée (%.2f€, caisse %s)", orderNumber, sale.Total, input.Register)
	c.JSON(http.StatusCreated, gin.H{"sale": sale, "order_number": orderNumber})
}

// ReceiptQR retourne le QR code PNG du ticket de caisse.
// GET /api/pos/sales/:id/receipt-qr
func ReceiptQR(c *gin.Context) {
	saleID := c.Param("id")

	var sale models.POSSale
	if err := database.DB.First(&sale, "id = ?", saleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vente introuvable"})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", sale.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	payload := fmt.Sprintf("velora://receipt/%s?order=%s&total=%.2f", sale.ID, order.OrderNumber, sale.Total)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
