package query

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
)

// GetPaymentQuery represents the query to get a payment by reference
type GetPaymentQuery struct {
	Reference  string
	MerchantID uuid.UUID
}

// GetPaymentHandler handles get payment query
type GetPaymentHandler struct {
	repo domain.PaymentRepository
}

// NewGetPaymentHandler creates a new get payment handler
func NewGetPaymentHandler(repo domain.PaymentRepository) *GetPaymentHandler {
	return &GetPaymentHandler{repo: repo}
}

// Handle executes the get payment query. Ownership is enforced here:
// another merchant's payment yields ErrForbidden, distinct from
// ErrPaymentNotFound.
func (h *GetPaymentHandler) Handle(query GetPaymentQuery) (*domain.Payment, error) {
	if query.Reference == "" {
		return nil, fmt.Errorf("%w: reference is required", domain.ErrValidation)
	}

	payment, err := h.repo.FindByReference(query.Reference)
	if err != nil {
		return nil, err
	}

	if payment.MerchantID != query.MerchantID {
		return nil, domain.ErrForbidden
	}

	return payment, nil
}
