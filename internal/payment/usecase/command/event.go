package command

import (
	"context"
	"time"

	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	"github.com/hayzedDev/istrategy-assessment-test/kafka"
)

// EventPublisher publishes payment lifecycle events. Satisfied by
// *kafka.Publisher; faked in tests.
type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, event kafka.PaymentEvent) error
}

// eventTypeForStatus maps the payment's new status to the published
// event type. Statuses other than COMPLETED/FAILED fall back to
// "payment-initiated" so every applied transition emits an event.
func eventTypeForStatus(status domain.PaymentStatus) string {
	switch status {
	case domain.StatusCompleted:
		return kafka.EventPaymentCompleted
	case domain.StatusFailed:
		return kafka.EventPaymentFailed
	default:
		return kafka.EventPaymentInitiated
	}
}

// buildPaymentEvent snapshots a payment into its lifecycle event.
func buildPaymentEvent(payment *domain.Payment, eventType string) kafka.PaymentEvent {
	return kafka.PaymentEvent{
		EventType:        eventType,
		Timestamp:        time.Now(),
		PaymentID:        payment.ID.String(),
		Reference:        payment.Reference,
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		Status:           string(payment.Status),
		MerchantID:       payment.MerchantID.String(),
		Metadata:         payment.Metadata,
		GatewayReference: payment.GatewayReference,
		ErrorMessage:     payment.ErrorMessage,
	}
}
