package query

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
)

// ListPaymentsQuery represents the query to list a merchant's payments
// with offset pagination. Page and Limit start at 1; no upper bound on
// Limit is enforced here, the HTTP layer owns input validation.
type ListPaymentsQuery struct {
	MerchantID uuid.UUID
	Page       int
	Limit      int
}

// PaginatedPayments is the page of results plus pagination metadata.
type PaginatedPayments struct {
	Items     []domain.Payment
	Total     int64
	Page      int
	Limit     int
	PageCount int
}

// ListPaymentsHandler handles list payments query
type ListPaymentsHandler struct {
	repo domain.PaymentRepository
}

// NewListPaymentsHandler creates a new list payments handler
func NewListPaymentsHandler(repo domain.PaymentRepository) *ListPaymentsHandler {
	return &ListPaymentsHandler{repo: repo}
}

// Handle executes the list payments query
func (h *ListPaymentsHandler) Handle(query ListPaymentsQuery) (*PaginatedPayments, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	payments, total, err := h.repo.FindByMerchant(query.MerchantID, query.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	pageCount := int((total + int64(query.Limit) - 1) / int64(query.Limit))

	return &PaginatedPayments{
		Items:     payments,
		Total:     total,
		Page:      query.Page,
		Limit:     query.Limit,
		PageCount: pageCount,
	}, nil
}
