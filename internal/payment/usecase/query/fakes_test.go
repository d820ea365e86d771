package query

import (
	"github.com/google/uuid"

	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
)

// fakePaymentRepo serves queries from an ordered slice so pagination is
// deterministic.
type fakePaymentRepo struct {
	payments []domain.Payment
}

func (r *fakePaymentRepo) Create(payment *domain.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) FindByReference(reference string) (*domain.Payment, error) {
	for i := range r.payments {
		if r.payments[i].Reference == reference {
			cp := r.payments[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (r *fakePaymentRepo) FindByMerchant(merchantID uuid.UUID, limit, offset int) ([]domain.Payment, int64, error) {
	var all []domain.Payment
	for _, p := range r.payments {
		if p.MerchantID == merchantID {
			all = append(all, p)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakePaymentRepo) ApplyGatewayUpdate(reference string, update domain.GatewayUpdate) (*domain.Payment, bool, error) {
	return nil, false, domain.ErrPaymentNotFound
}

type fakeMethodRepo struct {
	methods []domain.PaymentMethod
}

func (r *fakeMethodRepo) Create(method *domain.PaymentMethod) error {
	if method.ID == uuid.Nil {
		method.ID = uuid.New()
	}
	r.methods = append(r.methods, *method)
	return nil
}

func (r *fakeMethodRepo) FindByIDForMerchant(id, merchantID uuid.UUID) (*domain.PaymentMethod, error) {
	for i := range r.methods {
		if r.methods[i].ID == id && r.methods[i].MerchantID == merchantID {
			cp := r.methods[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentMethodNotFound
}

func (r *fakeMethodRepo) FindByMerchant(merchantID uuid.UUID) ([]domain.PaymentMethod, error) {
	var out []domain.PaymentMethod
	for _, m := range r.methods {
		if m.MerchantID == merchantID {
			out = append(out, m)
		}
	}
	return out, nil
}
