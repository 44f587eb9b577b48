package user

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

func setupOrderTest(t *testing.T) *gin.Engine {
	t.Helper()
	r := setupCartTest(t) // même environnement sqlite + miniredis
	r.POST("/orders/:id/confirm-delivery", ConfirmDelivery)
	r.GET("/orders/:id", GetOrderByID)
	return r
}

func createShippedOrder(t *testing.T, userID string, daysAgo int) models.Order {
	t.Helper()
	shippedAt := time.Now().AddDate(0, 0, -daysAgo)
	order := models.Order{
		ID:          uuid.NewString(),
		OrderNumber: "ORD-" + uuid.NewString()[:8],
		UserID:      &userID,
		Status:      models.OrderStatusShipped,
		TotalPrice:  25.0,
		ShippedAt:   &shippedAt,
	}
	require.NoError(t, database.DB.Create(&order).Error)
	return order
}

func TestConfirmDelivery(t *testing.T) {
	r := setupOrderTest(t)
	order := createShippedOrder(t, "user-test", 3)

	w := doJSON(t, r, http.MethodPost, "/orders/"+order.ID+"/confirm-delivery", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Order
	require.NoError(t, database.DB.First(&updated, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveredAt)

	// Le journal porte l'utilisateur comme acteur, pas le système.
	var hist models.OrderStatusHistory
	require.NoError(t, database.DB.First(&hist, "order_id = ?", order.ID).Error)
	assert.Equal(t, models.ActorKindUser, hist.ActorKind)
}

func TestConfirmDelivery_CommandeDAutrui(t *testing.T) {
	r := setupOrderTest(t)
	order := createShippedOrder(t, "autre-utilisateur", 3)

	w := doJSON(t, r, http.MethodPost, "/orders/"+order.ID+"/confirm-delivery", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var unchanged models.Order
	require.NoError(t, database.DB.First(&unchanged, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, unchanged.Status)
}

func TestConfirmDelivery_DejaLivree(t *testing.T) {
	r := setupOrderTest(t)
	order := createShippedOrder(t, "user-test", 3)

	require.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPost, "/orders/"+order.ID+"/confirm-delivery", nil).Code)

	// Deuxième confirmation : la commande n'est plus en shipped.
	w := doJSON(t, r, http.MethodPost, "/orders/"+order.ID+"/confirm-delivery", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var histCount int64
	require.NoError(t, database.DB.Model(&models.OrderStatusHistory{}).
		Where("order_id = ?", order.ID).Count(&histCount).Error)
	assert.EqualValues(t, 1, histCount)
}
