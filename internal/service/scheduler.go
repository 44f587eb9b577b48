package service

import (
	"context"
	"log"
	"time"

	"velora_back_end/internal/utils"
)

// StartAutoDeliveryScheduler lance le job périodique d'auto-livraison, suivi
// de l'envoi des emails de notification en attente. Deux passages qui se
// chevauchent (tick + déclenchement admin) sont sans danger : la mise à jour
// conditionnelle de ProcessOrder garantit qu'une commande n'est jamais
// livrée deux fois.
func StartAutoDeliveryScheduler(ctx context.Context, svc *AutoDeliveryService, interval time.Duration) {
	if interval <= 0 {
		log.Println("⚠️ Job d'auto-livraison désactivé (intervalle nul)")
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("⏰ Job d'auto-livraison planifié toutes les %s", interval)

		for {
			select {
			case <-ctx.Done():
				log.Println("🔌 Arrêt du job d'auto-livraison")
				return
			case <-ticker.C:
				if _, err := svc.Run(); err != nil {
					log.Printf("❌ Passage d'auto-livraison échoué: %v", err)
					continue
				}
				utils.DispatchPendingEmails(svc.db)
			}
		}
	}()
}
