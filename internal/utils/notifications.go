package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"velora_back_end/internal/models"
)

// CreateNotification insère une notification client. Passer la transaction
// en cours si la notification doit être atomique avec une transition.
func CreateNotification(tx *gorm.DB, orderID string, userID *string, notifType, title, message string) error {
	notif := models.DeliveryNotification{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	return tx.Create(&notif).Error
}

// DispatchPendingEmails relit les notifications jamais envoyées par email,
// les expédie et bascule email_sent. C'est le collecteur externe du §
// "notification sink" : le backend écrit, ce job relit. Best-effort : une
// erreur SMTP laisse email_sent à false pour un prochain passage.
func DispatchPendingEmails(db *gorm.DB) {
	var pending []models.DeliveryNotification
	if err := db.Where("email_sent = ?", false).
		Order("created_at ASC").Limit(100).Find(&pending).Error; err != nil {
		log.Printf("❌ Lecture des notifications en attente: %v", err)
		return
	}

	for i := range pending {
		notif := &pending[i]

		var order models.Order
		if err := db.First(&order, "id = ?", notif.OrderID).Error; err != nil {
			log.Printf("⚠️ Commande introuvable pour la notification %s", notif.ID)
			continue
		}
		if order.CustomerEmail == "" {
			continue
		}

		if err := SendEmail(order.CustomerEmail, notif.Title, notificationHTML(order, notif)); err != nil {
			log.Printf("❌ Erreur envoi email notification %s: %v", notif.ID, err)
			continue
		}

		if err := db.Model(notif).Update("email_sent", true).Error; err != nil {
			log.Printf("❌ Marquage email_sent de %s: %v", notif.ID, err)
		}
	}
}

// SendOrderStatusEmail envoie un email de changement de statut (fire-and-forget
// côté handlers admin).
func SendOrderStatusEmail(order models.Order, newStatus string) {
	if order.CustomerEmail == "" {
		return
	}
	go func() {
		subject := statusEmailSubject(newStatus)
		if err := SendEmail(order.CustomerEmail, subject, statusEmailHTML(order, newStatus)); err != nil {
			log.Printf("❌ Erreur envoi email statut: %v", err)
			return
		}
		log.Printf("📧 Email de statut envoyé: %s → %s", newStatus, order.CustomerEmail)
	}()
}

func statusEmailSubject(status string) string {
	switch status {
	case models.OrderStatusConfirmed:
		return "✅ Commande confirmée - Velora"
	case models.OrderStatusShipped:
		return "📦 Votre commande a été expédiée - Velora"
	case models.OrderStatusDelivered:
		return "🎉 Votre commande a été livrée - Velora"
	case models.OrderStatusCancelled:
		return "❌ Commande annulée - Velora"
	case models.OrderStatusReturned:
		return "💰 Retour enregistré - Velora"
	default:
		return "📋 Mise à jour de votre commande - Velora"
	}
}

func statusEmailHTML(order models.Order, status string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Mise à jour de votre commande</h2>
		<p>Bonjour,</p>
		<p>%s</p>
		<div style="background: #f0f0f0; padding: 15px; border-radius: 8px;">
			<p><strong>Numéro de commande :</strong> %s</p>
			<p><strong>Montant total :</strong> %.2f€</p>
			<p><strong>Statut :</strong> %s</p>
		</div>
		<p style="color: #999; font-size: 12px;">Cet email a été envoyé automatiquement, merci de ne pas y répondre.</p>
	</div>
</body>
</html>`, statusMessage(status), order.OrderNumber, order.TotalPrice, status)
}

func notificationHTML(order models.Order, notif *models.DeliveryNotification) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">%s</h2>
		<p>%s</p>
		<div style="background: #f0f0f0; padding: 15px; border-radius: 8px;">
			<p><strong>Numéro de commande :</strong> %s</p>
		</div>
		<p style="color: #999; font-size: 12px;">© Velora - Cet email a été envoyé automatiquement.</p>
	</div>
</body>
</html>`, notif.Title, notif.Message, order.OrderNumber)
}

func statusMessage(status string) string {
	switch status {
	case models.OrderStatusConfirmed:
		return "Votre commande a été confirmée. Nous la préparons."
	case models.OrderStatusShipped:
		return "Bonne nouvelle ! Votre commande a été expédiée et est en route vers vous."
	case models.OrderStatusDelivered:
		return "Votre commande a été livrée avec succès. Nous espérons que vous en êtes satisfait !"
	case models.OrderStatusCancelled:
		return "Votre commande a été annulée. Si vous avez des questions, n'hésitez pas à nous contacter."
	case models.OrderStatusReturned:
		return "Votre retour a été enregistré. Le remboursement suivra sous 5-10 jours ouvrés."
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}
