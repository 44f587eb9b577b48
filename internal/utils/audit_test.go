package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"velora_back_end/internal/models"
)

func newAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.OrderStatusHistory{}))
	return db
}

func TestRecordStatusChange_ActeurSysteme(t *testing.T) {
	db := newAuditTestDB(t)

	err := RecordStatusChange(db, "order-1", models.OrderStatusShipped,
		models.OrderStatusDelivered, models.SystemActor(), "Confirmation automatique")
	require.NoError(t, err)

	entries, err := OrderHistory(db, "order-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, models.ActorKindSystem, entries[0].ActorKind)
	assert.Empty(t, entries[0].ActorEmail)
	assert.Equal(t, models.SystemActor(), entries[0].Actor())
}

func TestRecordStatusChange_ActeurUtilisateur(t *testing.T) {
	db := newAuditTestDB(t)

	err := RecordStatusChange(db, "order-2", models.OrderStatusPending,
		models.OrderStatusConfirmed, models.UserActor("admin@velora.shop"), "Validation manuelle")
	require.NoError(t, err)

	entries, err := OrderHistory(db, "order-2")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, models.ActorKindUser, entries[0].ActorKind)
	assert.Equal(t, "admin@velora.shop", entries[0].ActorEmail)
	assert.Equal(t, models.UserActor("admin@velora.shop"), entries[0].Actor())
}

func TestOrderHistory_OrdreChronologique(t *testing.T) {
	db := newAuditTestDB(t)

	transitions := [][2]string{
		{models.OrderStatusPending, models.OrderStatusConfirmed},
		{models.OrderStatusConfirmed, models.OrderStatusShipped},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
	}
	for _, tr := range transitions {
		require.NoError(t, RecordStatusChange(db, "order-3", tr[0], tr[1],
			models.UserActor("ops@velora.shop"), ""))
		time.Sleep(time.Millisecond)
	}

	entries, err := OrderHistory(db, "order-3")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, models.OrderStatusPending, entries[0].OldStatus)
	assert.Equal(t, models.OrderStatusDelivered, entries[2].NewStatus)
}
