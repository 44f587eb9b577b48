package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

// AutoDeliveryThresholdDays : délai après expédition au-delà duquel une
// commande non confirmée est considérée comme livrée. Inclusif : une commande
// expédiée il y a exactement 30 jours est éligible.
const AutoDeliveryThresholdDays = 30

// AutoDeliveryOutcome : résultat du traitement d'une commande.
type AutoDeliveryOutcome struct {
	OrderID          string `json:"orderId"`
	OrderNumber      string `json:"orderNumber"`
	DaysSinceShipped int    `json:"daysSinceShipped"`
	Status           string `json:"status"` // success ou error
	Error            string `json:"error,omitempty"`
}

// AutoDeliveryResult : agrégat retourné à l'appelant (endpoint admin ou scheduler).
type AutoDeliveryResult struct {
	Success       bool                  `json:"success"`
	TotalEligible int                   `json:"totalEligible"`
	Processed     int                   `json:"processed"`
	Errors        int                   `json:"errors"`
	Results       []AutoDeliveryOutcome `json:"results"`
}

// AutoDeliveryService passe en delivered les commandes expédiées depuis au
// moins 30 jours, sans demande de remboursement ouverte. Chaque commande est
// traitée dans sa propre transaction : une commande en erreur n'empêche ni ne
// fait annuler les autres.
type AutoDeliveryService struct {
	db  *gorm.DB
	now func() time.Time

	// remplaçable dans les tests pour simuler une panne d'insertion
	createNotification func(tx *gorm.DB, n *models.DeliveryNotification) error
}

func NewAutoDeliveryService(db *gorm.DB) *AutoDeliveryService {
	return &AutoDeliveryService{
		db:  db,
		now: time.Now,
		createNotification: func(tx *gorm.DB, n *models.DeliveryNotification) error {
			return tx.Create(n).Error
		},
	}
}

// EligibleOrders retourne les commandes éligibles à l'auto-livraison, de la
// plus anciennement expédiée à la plus récente. Aucun effet de bord ; une
// liste vide n'est pas une erreur.
func (s *AutoDeliveryService) EligibleOrders(now time.Time) ([]models.Order, error) {
	cutoff := now.AddDate(0, 0, -AutoDeliveryThresholdDays)

	openRefunds := s.db.Model(&models.RefundRequest{}).
		Select("order_id").
		Where("status IN ?", models.OpenRefundStatuses)

	var orders []models.Order
	err := s.db.
		Where("status = ?", models.OrderStatusShipped).
		Where("shipped_at IS NOT NULL AND shipped_at <= ?", cutoff).
		Where("delivered_at IS NULL").
		Where("id NOT IN (?)", openRefunds).
		Order("shipped_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ProcessOrder effectue la transition shipped → delivered d'une seule
// commande, atomiquement : mise à jour du statut, notification client,
// ligne de journal. Tout ou rien.
//
// La mise à jour est conditionnelle (status = 'shipped' AND delivered_at IS
// NULL) : si un autre passage a déjà livré la commande, zéro ligne est
// affectée et le traitement s'arrête là, sans notification ni journal en
// double. Ce cas est un succès, pas une erreur.
func (s *AutoDeliveryService) ProcessOrder(order *models.Order, now time.Time) error {
	days := daysSince(order.ShippedAt, now)

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ? AND delivered_at IS NULL",
				order.ID, models.OrderStatusShipped).
			Updates(map[string]interface{}{
				"status":       models.OrderStatusDelivered,
				"delivered_at": now,
				"updated_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Déjà livrée par un passage concurrent : no-op bénin.
			return nil
		}

		if order.UserID != nil {
			notif := models.DeliveryNotification{
				ID:      uuid.NewString(),
				OrderID: order.ID,
				UserID:  order.UserID,
				Type:    models.NotificationDeliveryConfirmation,
				Title:   "Commande livrée",
				Message: fmt.Sprintf(
					"Votre commande %s a été automatiquement confirmée comme livrée (%d jours après expédition).",
					order.OrderNumber, days),
				CreatedAt: now,
			}
			if err := s.createNotification(tx, &notif); err != nil {
				return fmt.Errorf("création notification: %w", err)
			}
		}

		reason := fmt.Sprintf("Confirmation automatique de livraison après %d jours", days)
		if err := utils.RecordStatusChange(tx, order.ID,
			models.OrderStatusShipped, models.OrderStatusDelivered,
			models.SystemActor(), reason); err != nil {
			return fmt.Errorf("journal des statuts: %w", err)
		}

		return nil
	})
}

// Run exécute un passage complet : sélection puis traitement séquentiel.
// Seul un échec de la sélection est fatal ; les échecs par commande sont
// consignés dans le résultat et le passage continue.
func (s *AutoDeliveryService) Run() (*AutoDeliveryResult, error) {
	now := s.now()

	orders, err := s.EligibleOrders(now)
	if err != nil {
		return nil, fmt.Errorf("sélection des commandes éligibles: %w", err)
	}

	result := &AutoDeliveryResult{
		Success:       true,
		TotalEligible: len(orders),
		Results:       make([]AutoDeliveryOutcome, 0, len(orders)),
	}

	for i := range orders {
		order := &orders[i]
		outcome := AutoDeliveryOutcome{
			OrderID:          order.ID,
			OrderNumber:      order.OrderNumber,
			DaysSinceShipped: daysSince(order.ShippedAt, now),
			Status:           "success",
		}

		if err := s.ProcessOrder(order, now); err != nil {
			outcome.Status = "error"
			outcome.Error = err.Error()
			result.Errors++
			log.Printf("❌ Auto-livraison échouée pour %s: %v", order.OrderNumber, err)
		} else {
			result.Processed++
		}

		result.Results = append(result.Results, outcome)
	}

	log.Printf("📦 Auto-livraison : %d éligibles, %d traitées, %d erreurs",
		result.TotalEligible, result.Processed, result.Errors)

	return result, nil
}

// Preview retourne les commandes éligibles sans rien modifier.
func (s *AutoDeliveryService) Preview() ([]AutoDeliveryOutcome, error) {
	now := s.now()

	orders, err := s.EligibleOrders(now)
	if err != nil {
		return nil, fmt.Errorf("sélection des commandes éligibles: %w", err)
	}

	outcomes := make([]AutoDeliveryOutcome, 0, len(orders))
	for i := range orders {
		outcomes = append(outcomes, AutoDeliveryOutcome{
			OrderID:          orders[i].ID,
			OrderNumber:      orders[i].OrderNumber,
			DaysSinceShipped: daysSince(orders[i].ShippedAt, now),
			Status:           "eligible",
		})
	}
	return outcomes, nil
}

func daysSince(t *time.Time, now time.Time) int {
	if t == nil {
		return 0
	}
	return int(now.Sub(*t).Hours() / 24)
}
