//go:build wireinject
// +build wireinject

package payment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	merchanthandler "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/handler"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/handler"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/usecase/command"
	webhookhandler "github.com/hayzedDev/istrategy-assessment-test/internal/webhook/handler"
)

// InitializeHandler initializes payment handler with all dependencies
func InitializeHandler(db *gorm.DB, publisher command.EventPublisher, authMw *merchanthandler.AuthMiddleware) (*handler.PaymentHandler, error) {
	wire.Build(
		RepositorySet,
		ProvideCreatePaymentHandler,
		QueryHandlerSet,
		handler.NewPaymentHandler,
	)
	return nil, nil
}

// InitializeWebhookHandler initializes the gateway webhook handler
func InitializeWebhookHandler(db *gorm.DB, publisher command.EventPublisher) (*webhookhandler.WebhookHandler, error) {
	wire.Build(
		ProvidePaymentRepository,
		ProvideApplyStatusUpdateHandler,
		webhookhandler.NewWebhookHandler,
	)
	return nil, nil
}
