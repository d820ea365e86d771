package main

import (
	"os"

	merchantdomain "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	paymentdomain "github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	"github.com/hayzedDev/istrategy-assessment-test/internal/seeds"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/database"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
)

func main() {
	logger.Init("payment-seeder", true)

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "paymentdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.AutoMigrate(&merchantdomain.Merchant{}, &paymentdomain.PaymentMethod{}, &paymentdomain.Payment{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	seedFile := getEnv("SEED_FILE", "internal/seeds/seed-data.json")
	if err := seeds.Run(db, seedFile); err != nil {
		logger.Logger.Fatal().Err(err).Str("file", seedFile).Msg("Seeding failed")
	}

	logger.Logger.Info().Str("file", seedFile).Msg("Seeding completed")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
