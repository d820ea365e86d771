package query

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
)

// ListPaymentMethodsQuery represents the query to list a merchant's
// payment methods.
type ListPaymentMethodsQuery struct {
	MerchantID uuid.UUID
}

// ListPaymentMethodsHandler handles list payment methods query
type ListPaymentMethodsHandler struct {
	repo domain.PaymentMethodRepository
}

// NewListPaymentMethodsHandler creates a new list payment methods handler
func NewListPaymentMethodsHandler(repo domain.PaymentMethodRepository) *ListPaymentMethodsHandler {
	return &ListPaymentMethodsHandler{repo: repo}
}

// Handle executes the query. Configurations are masked on the way out;
// the stored rows are never touched.
func (h *ListPaymentMethodsHandler) Handle(query ListPaymentMethodsQuery) ([]domain.PaymentMethod, error) {
	methods, err := h.repo.FindByMerchant(query.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	masked := make([]domain.PaymentMethod, len(methods))
	for i, method := range methods {
		masked[i] = method
		masked[i].Configuration = method.MaskedConfiguration()
	}

	return masked, nil
}
