package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config regroupe toute la configuration du serveur, construite une seule fois
// au démarrage. Les couches métier reçoivent cette struct : aucun os.Getenv
// dans les handlers ou les services.
type Config struct {
	Port string

	// Postgres
	DatabaseDSN string

	// Redis
	RedisHost     string
	RedisPassword string

	// Elasticsearch
	ElasticURL      string
	ElasticUser     string
	ElasticPassword string

	// Stripe
	StripeSecretKey string

	// JWT
	JWTSecret string

	// SMTP
	SMTPHost     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	// Intervalle du job d'auto-livraison (0 = désactivé)
	AutoDeliveryInterval time.Duration
}

// Load charge le fichier .env puis construit la configuration.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseDSN:          getEnv("DATABASE_DSN", "host=localhost user=velora password=velora dbname=velora port=5432 sslmode=disable"),
		RedisHost:            getEnv("REDIS_HOST", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		ElasticURL:           os.Getenv("ELASTIC_URL"),
		ElasticUser:          os.Getenv("ELASTIC_USER"),
		ElasticPassword:      os.Getenv("ELASTIC_PASSWORD"),
		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		JWTSecret:            getEnv("JWT_SECRET", "super_secret"),
		SMTPHost:             getEnv("SMTP_HOST", "ssl0.ovh.net"),
		SMTPUsername:         os.Getenv("SMTP_USERNAME"),
		SMTPPassword:         os.Getenv("SMTP_PASSWORD"),
		MailFrom:             getEnv("MAIL_FROM", "noreply@velora.shop"),
		AutoDeliveryInterval: getEnvDuration("AUTO_DELIVERY_INTERVAL_MINUTES", 60),
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvDuration lit un nombre de minutes depuis l'environnement.
func getEnvDuration(key string, fallbackMinutes int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallbackMinutes) * time.Minute
	}
	minutes, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  %s invalide (%q), valeur par défaut utilisée", key, v)
		return time.Duration(fallbackMinutes) * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}
