package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	merchantdomain "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	"github.com/hayzedDev/istrategy-assessment-test/kafka"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/metrics"
)

// CreatePaymentCommand represents the command to create a payment
type CreatePaymentCommand struct {
	MerchantID      uuid.UUID
	Amount          float64
	Currency        string
	PaymentMethodID uuid.UUID
	Metadata        map[string]interface{}
	IPAddress       string
}

// CreatePaymentHandler handles create payment command
type CreatePaymentHandler struct {
	payments  domain.PaymentRepository
	methods   domain.PaymentMethodRepository
	merchants merchantdomain.MerchantRepository
	publisher EventPublisher
}

// NewCreatePaymentHandler creates a new create payment handler
func NewCreatePaymentHandler(
	payments domain.PaymentRepository,
	methods domain.PaymentMethodRepository,
	merchants merchantdomain.MerchantRepository,
	publisher EventPublisher,
) *CreatePaymentHandler {
	return &CreatePaymentHandler{
		payments:  payments,
		methods:   methods,
		merchants: merchants,
		publisher: publisher,
	}
}

// Handle executes the create payment command. The payment record is the
// source of truth: once it is persisted, a failure to publish the
// initiated event is logged and swallowed so the caller still learns of
// the creation.
func (h *CreatePaymentHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (*domain.Payment, error) {
	if cmd.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", domain.ErrValidation)
	}

	currency := cmd.Currency
	if currency == "" {
		currency = "USD"
	}

	if _, err := h.merchants.FindByID(cmd.MerchantID); err != nil {
		return nil, err
	}

	// Ownership check and existence check in one lookup: a valid method id
	// belonging to another merchant must be indistinguishable from a
	// missing one.
	if _, err := h.methods.FindByIDForMerchant(cmd.PaymentMethodID, cmd.MerchantID); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		Reference:       generateReference(),
		Amount:          cmd.Amount,
		Currency:        currency,
		Status:          domain.StatusPending,
		Metadata:        datatypes.JSONMap(cmd.Metadata),
		IPAddress:       cmd.IPAddress,
		MerchantID:      cmd.MerchantID,
		PaymentMethodID: cmd.PaymentMethodID,
	}
	if payment.Metadata == nil {
		payment.Metadata = datatypes.JSONMap{}
	}

	// Uniqueness of the reference is enforced by the store's unique
	// constraint; a collision surfaces here as a retryable error.
	if err := h.payments.Create(payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	metrics.PaymentsCreated.Inc()

	if err := h.publisher.PublishPaymentEvent(ctx, buildPaymentEvent(payment, kafka.EventPaymentInitiated)); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("reference", payment.Reference).
			Msg("Failed to publish payment-initiated event")
	}

	return payment, nil
}

// generateReference builds a collision-resistant human-readable payment
// reference: a fixed prefix plus the first uuid segment uppercased.
func generateReference() string {
	return "PAY-" + strings.ToUpper(strings.SplitN(uuid.New().String(), "-", 2)[0])
}
