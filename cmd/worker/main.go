package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hayzedDev/istrategy-assessment-test/kafka"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/tracing"
)

// The worker consumes payment lifecycle events and records them. It is
// the integration point for downstream side effects such as merchant
// notifications and settlement exports.
func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "payment-worker")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Msg("Starting payment worker")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	}

	brokers := []string{getEnv("KAFKA_BROKERS", "localhost:9092")}
	groupID := getEnv("KAFKA_GROUP_ID", "payment-events-worker")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicPaymentEvents})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventPaymentInitiated, logPaymentEvent)
	consumer.RegisterHandler(kafka.EventPaymentCompleted, logPaymentEvent)
	consumer.RegisterHandler(kafka.EventPaymentFailed, logPaymentEvent)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down worker...")
	cancel()

	if tp != nil {
		if err := tracing.Shutdown(context.Background(), tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}
}

func logPaymentEvent(ctx context.Context, event kafka.PaymentEvent) error {
	logger.Info(ctx).
		Str("event_type", event.EventType).
		Str("reference", event.Reference).
		Str("status", event.Status).
		Float64("amount", event.Amount).
		Str("currency", event.Currency).
		Str("merchant_id", event.MerchantID).
		Msg("Payment event received")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
