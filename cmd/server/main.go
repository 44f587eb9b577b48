package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"velora_back_end/internal/config"
	"velora_back_end/internal/database"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/routes"
	"velora_back_end/internal/service"
	"velora_back_end/internal/utils"
)

func main() {
	cfg := config.Load()

	if cfg.StripeSecretKey == "" {
		log.Fatal("❌ Impossible d'initialiser Stripe : clé manquante")
	}
	stripe.Key = cfg.StripeSecretKey
	log.Println("✅ Stripe initialisé")

	middleware.InitJWT(cfg.JWTSecret)
	utils.InitJWT(cfg.JWTSecret)
	utils.InitMailer(cfg.SMTPHost, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	database.ConnectDatabases(cfg)

	// Job d'auto-livraison : les commandes expédiées depuis 30 jours sans
	// confirmation passent en delivered.
	autoDelivery := service.NewAutoDeliveryService(database.DB)
	service.StartAutoDeliveryScheduler(context.Background(), autoDelivery, cfg.AutoDeliveryInterval)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.RegisterRoutes(r)

	log.Println("🚀 Serveur Velora lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Erreur démarrage serveur:", err)
	}
}
