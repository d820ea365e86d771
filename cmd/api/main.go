package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant"
	merchantdomain "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment"
	paymentdomain "github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	paymenthandler "github.com/hayzedDev/istrategy-assessment-test/internal/payment/handler"
	"github.com/hayzedDev/istrategy-assessment-test/kafka"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/auth"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/database"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "payment-api")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting payment API")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "paymentdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&merchantdomain.Merchant{}, &paymentdomain.PaymentMethod{}, &paymentdomain.Payment{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Token manager and Redis-backed blacklist
	jwtSecret := getEnv("JWT_SECRET", "dev-secret-change-me")
	tokenTTL := getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour)
	tokens := auth.NewTokenManager(jwtSecret, tokenTTL)

	requireCache := getEnvBool("REQUIRE_REDIS", false)
	redisClient, err := auth.NewRedisClient(
		getEnv("REDIS_ADDR", "localhost:6379"),
		getEnv("REDIS_PASSWORD", ""),
		getEnvInt("REDIS_DB", 0),
	)
	if err != nil {
		if requireCache {
			logger.Logger.Fatal().Err(err).Msg("Redis is required but unavailable")
		}
		logger.Logger.Warn().Err(err).Msg("Redis unavailable, token revocation disabled")
		redisClient = nil
	}
	tokenStore := auth.NewTokenStore(redisClient, requireCache)

	// Kafka publisher
	brokers := []string{getEnv("KAFKA_BROKERS", "localhost:9092")}
	publisher, err := kafka.NewPublisher(brokers)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
	}
	defer publisher.Close()

	// Initialize handlers with Wire DI
	merchantHandler, err := merchant.InitializeHandler(db, tokens, tokenStore)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize merchant handler")
	}

	paymentHandler, err := payment.InitializeHandler(db, publisher, merchantHandler.AuthMiddleware())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize payment handler")
	}

	webhookHandler, err := payment.InitializeWebhookHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize webhook handler")
	}

	logger.Logger.Info().Msg("Handlers initialized")

	// Setup router
	router := mux.NewRouter()

	paymenthandler.RegisterMiddlewares(router, paymenthandler.DefaultMiddlewareConfig())

	merchantHandler.RegisterRoutes(router)
	paymentHandler.RegisterRoutes(router)
	webhookHandler.RegisterRoutes(router)

	paymenthandler.RegisterHealthCheck(router, serviceName, sqlDB)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: c.Handler(router),
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
