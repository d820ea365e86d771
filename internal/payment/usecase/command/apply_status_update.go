package command

import (
	"context"
	"fmt"

	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/metrics"
)

// ApplyStatusUpdateCommand carries a gateway status notification onto a
// payment identified by its reference.
type ApplyStatusUpdateCommand struct {
	Reference           string
	Status              domain.PaymentStatus
	GatewayReference    string
	GatewayResponseCode string
	ErrorMessage        string
	Metadata            map[string]interface{}
}

// ApplyStatusUpdateHandler handles gateway status update commands
type ApplyStatusUpdateHandler struct {
	payments  domain.PaymentRepository
	publisher EventPublisher
}

// NewApplyStatusUpdateHandler creates a new status update handler
func NewApplyStatusUpdateHandler(payments domain.PaymentRepository, publisher EventPublisher) *ApplyStatusUpdateHandler {
	return &ApplyStatusUpdateHandler{payments: payments, publisher: publisher}
}

// Handle executes the status update. The returned bool reports whether a
// transition was applied; a payment already in a terminal state is
// returned unchanged with no write and no event, so webhook retries are
// observationally identical to their first delivery.
func (h *ApplyStatusUpdateHandler) Handle(ctx context.Context, cmd ApplyStatusUpdateCommand) (*domain.Payment, bool, error) {
	if cmd.GatewayReference == "" {
		return nil, false, fmt.Errorf("%w: gatewayReference is required", domain.ErrValidation)
	}
	if !cmd.Status.Valid() {
		return nil, false, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, cmd.Status)
	}

	payment, applied, err := h.payments.ApplyGatewayUpdate(cmd.Reference, domain.GatewayUpdate{
		Status:              cmd.Status,
		GatewayReference:    cmd.GatewayReference,
		GatewayResponseCode: cmd.GatewayResponseCode,
		ErrorMessage:        cmd.ErrorMessage,
		Metadata:            cmd.Metadata,
	})
	if err != nil {
		return nil, false, err
	}

	if !applied {
		metrics.WebhooksReplayed.Inc()
		logger.Info(ctx).
			Str("reference", payment.Reference).
			Str("status", string(payment.Status)).
			Msg("Payment already in terminal state, no update applied")
		return payment, false, nil
	}

	// The state change is committed; event delivery is best-effort.
	eventType := eventTypeForStatus(payment.Status)
	if err := h.publisher.PublishPaymentEvent(ctx, buildPaymentEvent(payment, eventType)); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("reference", payment.Reference).
			Str("event_type", eventType).
			Msg("Failed to publish payment status event")
	}

	return payment, true, nil
}
