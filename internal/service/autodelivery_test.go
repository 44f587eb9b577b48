package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T, now time.Time) (*AutoDeliveryService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewAutoDeliveryService(db)
	svc.now = func() time.Time { return now }
	return svc, db
}

// shippedOrder insère une commande expédiée il y a daysAgo jours.
func shippedOrder(t *testing.T, db *gorm.DB, number string, daysAgo int, userID *string, now time.Time) models.Order {
	t.Helper()
	shippedAt := now.AddDate(0, 0, -daysAgo)
	order := models.Order{
		ID:            uuid.NewString(),
		OrderNumber:   number,
		UserID:        userID,
		CustomerEmail: "client@example.com",
		Status:        models.OrderStatusShipped,
		TotalPrice:    49.90,
		ShippedAt:     &shippedAt,
		CreatedAt:     shippedAt.AddDate(0, 0, -2),
		UpdatedAt:     shippedAt,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func strPtr(s string) *string { return &s }

func TestEligibleOrders_SeuilDe30Jours(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	shippedOrder(t, db, "ORD-29J", 29, nil, now)
	exact := shippedOrder(t, db, "ORD-30J", 30, nil, now)
	old := shippedOrder(t, db, "ORD-45J", 45, nil, now)

	orders, err := svc.EligibleOrders(now)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Tri par shipped_at croissant : la plus ancienne d'abord.
	assert.Equal(t, old.ID, orders[0].ID)
	assert.Equal(t, exact.ID, orders[1].ID)
}

func TestEligibleOrders_StatutsNonExpedies(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	for _, status := range []string{
		models.OrderStatusPending, models.OrderStatusDelivered,
		models.OrderStatusCancelled, models.OrderStatusReturned,
	} {
		shippedAt := now.AddDate(0, 0, -40)
		order := models.Order{
			ID:          uuid.NewString(),
			OrderNumber: "ORD-" + status,
			Status:      status,
			ShippedAt:   &shippedAt,
		}
		require.NoError(t, db.Create(&order).Error)
	}

	orders, err := svc.EligibleOrders(now)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestEligibleOrders_RemboursementOuvertBloque(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	blocked := shippedOrder(t, db, "ORD-REFUND-PENDING", 35, nil, now)
	alsoBlocked := shippedOrder(t, db, "ORD-REFUND-APPROVED", 35, nil, now)
	free := shippedOrder(t, db, "ORD-REFUND-REJECTED", 35, nil, now)

	for orderID, status := range map[string]string{
		blocked.ID:     models.RefundStatusPending,
		alsoBlocked.ID: models.RefundStatusApproved,
		free.ID:        models.RefundStatusRejected,
	} {
		refund := models.RefundRequest{
			ID:      uuid.NewString(),
			OrderID: orderID,
			Status:  status,
			Reason:  "Produit endommagé à la réception",
		}
		require.NoError(t, db.Create(&refund).Error)
	}

	orders, err := svc.EligibleOrders(now)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, free.ID, orders[0].ID)
}

func TestEligibleOrders_AucuneCommande(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	// L'absence de candidates n'est pas une erreur.
	orders, err := svc.EligibleOrders(now)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestProcessOrder_TransitionComplete(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	userID := strPtr(uuid.NewString())
	order := shippedOrder(t, db, "ORD-101", 31, userID, now)

	require.NoError(t, svc.ProcessOrder(&order, now))

	var updated models.Order
	require.NoError(t, db.First(&updated, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveredAt)

	var notif models.DeliveryNotification
	require.NoError(t, db.First(&notif, "order_id = ?", order.ID).Error)
	assert.Equal(t, models.NotificationDeliveryConfirmation, notif.Type)
	assert.Contains(t, notif.Message, "ORD-101")
	assert.Contains(t, notif.Message, "31 jours")
	assert.False(t, notif.IsRead)
	assert.False(t, notif.EmailSent)

	var hist models.OrderStatusHistory
	require.NoError(t, db.First(&hist, "order_id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, hist.OldStatus)
	assert.Equal(t, models.OrderStatusDelivered, hist.NewStatus)
	assert.Equal(t, models.ActorKindSystem, hist.ActorKind)
	assert.Empty(t, hist.ActorEmail)
	assert.Contains(t, hist.Reason, "31 jours")
}

func TestProcessOrder_SansUtilisateur(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	// Commande invitée : pas de notification, mais le journal est écrit.
	order := shippedOrder(t, db, "ORD-GUEST", 40, nil, now)
	require.NoError(t, svc.ProcessOrder(&order, now))

	var notifCount int64
	require.NoError(t, db.Model(&models.DeliveryNotification{}).Count(&notifCount).Error)
	assert.Zero(t, notifCount)

	var histCount int64
	require.NoError(t, db.Model(&models.OrderStatusHistory{}).Count(&histCount).Error)
	assert.EqualValues(t, 1, histCount)
}

func TestProcessOrder_Idempotence(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	userID := strPtr(uuid.NewString())
	order := shippedOrder(t, db, "ORD-DOUBLE", 32, userID, now)

	require.NoError(t, svc.ProcessOrder(&order, now))
	// Deuxième passage : zéro ligne affectée, aucun effet de bord, pas d'erreur.
	require.NoError(t, svc.ProcessOrder(&order, now))

	var notifCount, histCount int64
	require.NoError(t, db.Model(&models.DeliveryNotification{}).Where("order_id = ?", order.ID).Count(&notifCount).Error)
	require.NoError(t, db.Model(&models.OrderStatusHistory{}).Where("order_id = ?", order.ID).Count(&histCount).Error)
	assert.EqualValues(t, 1, notifCount)
	assert.EqualValues(t, 1, histCount)
}

func TestProcessOrder_RollbackSiNotificationEchoue(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	svc.createNotification = func(tx *gorm.DB, n *models.DeliveryNotification) error {
		return errors.New("panne simulée")
	}

	userID := strPtr(uuid.NewString())
	order := shippedOrder(t, db, "ORD-ATOMIQUE", 33, userID, now)

	err := svc.ProcessOrder(&order, now)
	require.Error(t, err)

	// Tout ou rien : la mise à jour du statut est elle aussi annulée.
	var updated models.Order
	require.NoError(t, db.First(&updated, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Nil(t, updated.DeliveredAt)

	var histCount int64
	require.NoError(t, db.Model(&models.OrderStatusHistory{}).Count(&histCount).Error)
	assert.Zero(t, histCount)
}

func TestRun_IsolationDesEchecs(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	userID := strPtr(uuid.NewString())
	shippedOrder(t, db, "ORD-1", 45, userID, now)
	shippedOrder(t, db, "ORD-2", 40, userID, now)
	shippedOrder(t, db, "ORD-3", 35, userID, now)

	defaultCreate := svc.createNotification
	svc.createNotification = func(tx *gorm.DB, n *models.DeliveryNotification) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", n.OrderID).Error; err != nil {
			return err
		}
		if order.OrderNumber == "ORD-2" {
			return errors.New("panne simulée")
		}
		return defaultCreate(tx, n)
	}

	result, err := svc.Run()
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalEligible)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Errors)

	statuses := map[string]string{}
	for _, outcome := range result.Results {
		statuses[outcome.OrderNumber] = outcome.Status
	}
	assert.Equal(t, "success", statuses["ORD-1"])
	assert.Equal(t, "error", statuses["ORD-2"])
	assert.Equal(t, "success", statuses["ORD-3"])

	// ORD-2 reste expédiée, les deux autres sont livrées.
	var stillShipped models.Order
	require.NoError(t, db.First(&stillShipped, "order_number = ?", "ORD-2").Error)
	assert.Equal(t, models.OrderStatusShipped, stillShipped.Status)

	var deliveredCount int64
	require.NoError(t, db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).Count(&deliveredCount).Error)
	assert.EqualValues(t, 2, deliveredCount)
}

func TestRun_ScenarioComplet(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	userID := strPtr(uuid.NewString())
	o101 := shippedOrder(t, db, "ORD-101", 31, userID, now)
	o102 := shippedOrder(t, db, "ORD-102", 45, userID, now)

	result, err := svc.Run()
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalEligible)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Errors)
	require.Len(t, result.Results, 2)

	// FIFO : la plus ancienne (45 jours) est traitée en premier.
	assert.Equal(t, o102.ID, result.Results[0].OrderID)
	assert.Equal(t, 45, result.Results[0].DaysSinceShipped)
	assert.Equal(t, "success", result.Results[0].Status)
	assert.Equal(t, o101.ID, result.Results[1].OrderID)
	assert.Equal(t, 31, result.Results[1].DaysSinceShipped)
	assert.Equal(t, "success", result.Results[1].Status)
}

func TestRun_AucuneEligible(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	result, err := svc.Run()
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Zero(t, result.TotalEligible)
	assert.Empty(t, result.Results)
}

func TestPreview_SansMutation(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	shippedOrder(t, db, "ORD-PREVIEW", 36, strPtr(uuid.NewString()), now)

	outcomes, err := svc.Preview()
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "eligible", outcomes[0].Status)
	assert.Equal(t, 36, outcomes[0].DaysSinceShipped)

	// Lecture seule : la commande n'a pas bougé.
	var order models.Order
	require.NoError(t, db.First(&order, "order_number = ?", "ORD-PREVIEW").Error)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
	assert.Nil(t, order.DeliveredAt)

	var notifCount int64
	require.NoError(t, db.Model(&models.DeliveryNotification{}).Count(&notifCount).Error)
	assert.Zero(t, notifCount)
}
