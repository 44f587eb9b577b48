package utils

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"velora_back_end/internal/models"
)

// RecordStatusChange ajoute une ligne au journal des transitions de statut.
// Le journal est en append-only : aucune mise à jour, aucune suppression.
// Passer la transaction en cours pour que l'écriture soit atomique avec la
// transition elle-même.
func RecordStatusChange(tx *gorm.DB, orderID, oldStatus, newStatus string, actor models.Actor, reason string) error {
	entry := models.OrderStatusHistory{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		ActorKind:  actor.Kind,
		ActorEmail: actor.Email,
		Reason:     reason,
		CreatedAt:  time.Now(),
	}
	return tx.Create(&entry).Error
}

// OrderHistory retourne le journal d'une commande, du plus ancien au plus récent.
func OrderHistory(db *gorm.DB, orderID string) ([]models.OrderStatusHistory, error) {
	var entries []models.OrderStatusHistory
	err := db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}
