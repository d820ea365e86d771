package payment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	merchantdomain "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	merchantrepo "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/repository"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/repository"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/usecase/command"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/usecase/query"
)

// ProvidePaymentRepository provides the payment repository
func ProvidePaymentRepository(db *gorm.DB) domain.PaymentRepository {
	return repository.NewGormPaymentRepository(db)
}

// ProvidePaymentMethodRepository provides the payment method repository
func ProvidePaymentMethodRepository(db *gorm.DB) domain.PaymentMethodRepository {
	return repository.NewGormPaymentMethodRepository(db)
}

// ProvideMerchantRepository provides the merchant repository for
// ownership checks during payment creation.
func ProvideMerchantRepository(db *gorm.DB) merchantdomain.MerchantRepository {
	return merchantrepo.NewGormMerchantRepository(db)
}

// Command Handlers Providers
func ProvideCreatePaymentHandler(
	payments domain.PaymentRepository,
	methods domain.PaymentMethodRepository,
	merchants merchantdomain.MerchantRepository,
	publisher command.EventPublisher,
) *command.CreatePaymentHandler {
	return command.NewCreatePaymentHandler(payments, methods, merchants, publisher)
}

func ProvideApplyStatusUpdateHandler(payments domain.PaymentRepository, publisher command.EventPublisher) *command.ApplyStatusUpdateHandler {
	return command.NewApplyStatusUpdateHandler(payments, publisher)
}

// Query Handlers Providers
func ProvideGetPaymentHandler(repo domain.PaymentRepository) *query.GetPaymentHandler {
	return query.NewGetPaymentHandler(repo)
}

func ProvideListPaymentsHandler(repo domain.PaymentRepository) *query.ListPaymentsHandler {
	return query.NewListPaymentsHandler(repo)
}

func ProvideListPaymentMethodsHandler(repo domain.PaymentMethodRepository) *query.ListPaymentMethodsHandler {
	return query.NewListPaymentMethodsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvidePaymentRepository,
	ProvidePaymentMethodRepository,
	ProvideMerchantRepository,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetPaymentHandler,
	ProvideListPaymentsHandler,
	ProvideListPaymentMethodsHandler,
)
