package query

import (
	"fmt"

	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
)

// MerchantSummary is the public projection of a merchant.
type MerchantSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListMerchantsHandler handles list merchants query
type ListMerchantsHandler struct {
	repo domain.MerchantRepository
}

// NewListMerchantsHandler creates a new list merchants handler
func NewListMerchantsHandler(repo domain.MerchantRepository) *ListMerchantsHandler {
	return &ListMerchantsHandler{repo: repo}
}

// Handle returns all active merchants as public summaries.
func (h *ListMerchantsHandler) Handle() ([]MerchantSummary, error) {
	merchants, err := h.repo.FindAllActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}

	summaries := make([]MerchantSummary, len(merchants))
	for i, m := range merchants {
		summaries[i] = MerchantSummary{Name: m.Name, Email: m.Email}
	}

	return summaries, nil
}
