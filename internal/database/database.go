package database

import (
	"context"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
)

// --- Variables Globales ---
var (
	DB      *gorm.DB
	Redis   *redis.Client
	Elastic *elasticsearch.Client
)

// ConnectDatabases initialise Postgres, Redis et Elasticsearch.
func ConnectDatabases(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Postgres (GORM)
	connectPostgres(cfg)

	// 2. Redis
	connectRedis(ctx, cfg)

	// 3. Elasticsearch (optionnel : la recherche se dégrade en LIKE si absent)
	connectElastic(cfg)

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// POSTGRES (GORM)
// =============================================
func connectPostgres(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("❌ Erreur connexion Postgres: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Erreur récupération pool Postgres: %v", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		log.Fatalf("❌ Erreur migration Postgres: %v", err)
	}

	DB = db
	log.Println("✅ Connecté à Postgres")
}

// Migrate crée/complète le schéma. Exporté pour les tests (sqlite en mémoire).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.RefundRequest{},
		&models.DeliveryNotification{},
		&models.OrderStatusHistory{},
		&models.ChatMessage{},
		&models.StoreSetting{},
		&models.POSSale{},
	)
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context, cfg *config.Config) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic(cfg *config.Config) {
	if cfg.ElasticURL == "" {
		log.Println("⚠️ ELASTIC_URL absent — recherche Elasticsearch désactivée")
		return
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
		Username:  cfg.ElasticUser,
		Password:  cfg.ElasticPassword,
	})
	if err != nil {
		log.Fatal("❌ Erreur création client Elasticsearch:", err)
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable — recherche désactivée:", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}
