package command

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	merchantdomain "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	"github.com/hayzedDev/istrategy-assessment-test/kafka"
)

// fakePaymentRepo is an in-memory PaymentRepository keyed by reference.
// ApplyGatewayUpdate serializes on a mutex the way the real store
// serializes on a row lock.
type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment
	writes   int
	failNext error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*domain.Payment)}
}

func (r *fakePaymentRepo) Create(payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	if _, exists := r.payments[payment.Reference]; exists {
		return errors.New("duplicate reference")
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	payment.CreatedAt = time.Now()
	cp := *payment
	r.payments[payment.Reference] = &cp
	r.writes++
	return nil
}

func (r *fakePaymentRepo) FindByReference(reference string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[reference]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) FindByMerchant(merchantID uuid.UUID, limit, offset int) ([]domain.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []domain.Payment
	for _, p := range r.payments {
		if p.MerchantID == merchantID {
			all = append(all, *p)
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
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[reference]
	if !ok {
		return nil, false, domain.ErrPaymentNotFound
	}
	applied := p.ApplyGatewayUpdate(update, time.Now())
	if applied {
		r.writes++
	}
	cp := *p
	return &cp, applied, nil
}

// fakeMethodRepo is an in-memory PaymentMethodRepository.
type fakeMethodRepo struct {
	methods map[uuid.UUID]*domain.PaymentMethod
}

func newFakeMethodRepo() *fakeMethodRepo {
	return &fakeMethodRepo{methods: make(map[uuid.UUID]*domain.PaymentMethod)}
}

func (r *fakeMethodRepo) Create(method *domain.PaymentMethod) error {
	if method.ID == uuid.Nil {
		method.ID = uuid.New()
	}
	r.methods[method.ID] = method
	return nil
}

func (r *fakeMethodRepo) FindByIDForMerchant(id, merchantID uuid.UUID) (*domain.PaymentMethod, error) {
	m, ok := r.methods[id]
	if !ok || m.MerchantID != merchantID {
		return nil, domain.ErrPaymentMethodNotFound
	}
	return m, nil
}

func (r *fakeMethodRepo) FindByMerchant(merchantID uuid.UUID) ([]domain.PaymentMethod, error) {
	var out []domain.PaymentMethod
	for _, m := range r.methods {
		if m.MerchantID == merchantID {
			out = append(out, *m)
		}
	}
	return out, nil
}

// fakeMerchantRepo is an in-memory MerchantRepository.
type fakeMerchantRepo struct {
	merchants map[uuid.UUID]*merchantdomain.Merchant
}

func newFakeMerchantRepo() *fakeMerchantRepo {
	return &fakeMerchantRepo{merchants: make(map[uuid.UUID]*merchantdomain.Merchant)}
}

func (r *fakeMerchantRepo) Create(m *merchantdomain.Merchant) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.merchants[m.ID] = m
	return nil
}

func (r *fakeMerchantRepo) FindByID(id uuid.UUID) (*merchantdomain.Merchant, error) {
	m, ok := r.merchants[id]
	if !ok {
		return nil, merchantdomain.ErrMerchantNotFound
	}
	return m, nil
}

func (r *fakeMerchantRepo) FindByEmail(email string) (*merchantdomain.Merchant, error) {
	for _, m := range r.merchants {
		if m.Email == email {
			return m, nil
		}
	}
	return nil, merchantdomain.ErrMerchantNotFound
}

func (r *fakeMerchantRepo) FindAllActive() ([]merchantdomain.Merchant, error) {
	var out []merchantdomain.Merchant
	for _, m := range r.merchants {
		if m.IsActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

// fakePublisher records published events and can be told to fail.
type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.PaymentEvent
	err    error
}

func (p *fakePublisher) PublishPaymentEvent(_ context.Context, event kafka.PaymentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) published() []kafka.PaymentEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]kafka.PaymentEvent, len(p.events))
	copy(out, p.events)
	return out
}
