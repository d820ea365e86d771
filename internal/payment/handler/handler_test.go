package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	merchantdomain "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	merchanthandler "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/handler"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/usecase/command"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/usecase/query"
	"github.com/hayzedDev/istrategy-assessment-test/kafka"
)

type memPaymentRepo struct {
	payments []domain.Payment
}

func (r *memPaymentRepo) Create(payment *domain.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *memPaymentRepo) FindByReference(reference string) (*domain.Payment, error) {
	for i := range r.payments {
		if r.payments[i].Reference == reference {
			cp := r.payments[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (r *memPaymentRepo) FindByMerchant(merchantID uuid.UUID, limit, offset int) ([]domain.Payment, int64, error) {
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

func (r *memPaymentRepo) ApplyGatewayUpdate(reference string, update domain.GatewayUpdate) (*domain.Payment, bool, error) {
	for i := range r.payments {
		if r.payments[i].Reference == reference {
			applied := r.payments[i].ApplyGatewayUpdate(update, time.Now())
			cp := r.payments[i]
			return &cp, applied, nil
		}
	}
	return nil, false, domain.ErrPaymentNotFound
}

type memMethodRepo struct {
	methods []domain.PaymentMethod
}

func (r *memMethodRepo) Create(method *domain.PaymentMethod) error {
	if method.ID == uuid.Nil {
		method.ID = uuid.New()
	}
	r.methods = append(r.methods, *method)
	return nil
}

func (r *memMethodRepo) FindByIDForMerchant(id, merchantID uuid.UUID) (*domain.PaymentMethod, error) {
	for i := range r.methods {
		if r.methods[i].ID == id && r.methods[i].MerchantID == merchantID {
			cp := r.methods[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentMethodNotFound
}

func (r *memMethodRepo) FindByMerchant(merchantID uuid.UUID) ([]domain.PaymentMethod, error) {
	var out []domain.PaymentMethod
	for _, m := range r.methods {
		if m.MerchantID == merchantID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memMerchantRepo struct {
	merchants []merchantdomain.Merchant
}

func (r *memMerchantRepo) Create(m *merchantdomain.Merchant) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.merchants = append(r.merchants, *m)
	return nil
}

func (r *memMerchantRepo) FindByID(id uuid.UUID) (*merchantdomain.Merchant, error) {
	for i := range r.merchants {
		if r.merchants[i].ID == id {
			cp := r.merchants[i]
			return &cp, nil
		}
	}
	return nil, merchantdomain.ErrMerchantNotFound
}

func (r *memMerchantRepo) FindByEmail(email string) (*merchantdomain.Merchant, error) {
	for i := range r.merchants {
		if r.merchants[i].Email == email {
			cp := r.merchants[i]
			return &cp, nil
		}
	}
	return nil, merchantdomain.ErrMerchantNotFound
}

func (r *memMerchantRepo) FindAllActive() ([]merchantdomain.Merchant, error) {
	return r.merchants, nil
}

type noopPublisher struct{}

func (noopPublisher) PublishPaymentEvent(context.Context, kafka.PaymentEvent) error { return nil }

type paymentHandlerFixture struct {
	handler  *PaymentHandler
	payments *memPaymentRepo
	methods  *memMethodRepo
	merchant *merchantdomain.Merchant
	method   *domain.PaymentMethod
}

func newPaymentHandlerFixture(t *testing.T) *paymentHandlerFixture {
	t.Helper()

	payments := &memPaymentRepo{}
	methods := &memMethodRepo{}
	merchants := &memMerchantRepo{}

	merchant := &merchantdomain.Merchant{Name: "Acme", Email: "acme@example.com", IsActive: true}
	require.NoError(t, merchants.Create(merchant))

	method := &domain.PaymentMethod{Type: domain.MethodCreditCard, Name: "Visa", Active: true, MerchantID: merchant.ID}
	require.NoError(t, methods.Create(method))

	h := NewPaymentHandler(
		command.NewCreatePaymentHandler(payments, methods, merchants, noopPublisher{}),
		query.NewGetPaymentHandler(payments),
		query.NewListPaymentsHandler(payments),
		query.NewListPaymentMethodsHandler(methods),
		nil,
	)

	return &paymentHandlerFixture{handler: h, payments: payments, methods: methods, merchant: merchant, method: method}
}

func authedRequest(merchant *merchantdomain.Merchant, method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(merchanthandler.ContextWithMerchant(req.Context(), merchant))
}

func TestCreatePaymentEndpoint(t *testing.T) {
	f := newPaymentHandlerFixture(t)

	body, _ := json.Marshal(map[string]interface{}{
		"amount":          99.90,
		"currency":        "EUR",
		"paymentMethodId": f.method.ID.String(),
		"metadata":        map[string]interface{}{"orderId": "ORD-7"},
	})
	req := authedRequest(f.merchant, http.MethodPost, "/api/payments", body)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()

	f.handler.CreatePayment(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    PaymentProjection `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, domain.StatusPending, resp.Data.Status)
	require.Equal(t, 99.90, resp.Data.Amount)
	require.Equal(t, "EUR", resp.Data.Currency)
	require.NotEmpty(t, resp.Data.Reference)

	// The recorded client IP is the first forwarded hop.
	require.Len(t, f.payments.payments, 1)
	require.Equal(t, "203.0.113.7", f.payments.payments[0].IPAddress)

	// Metadata is stored but never echoed back.
	require.Equal(t, "ORD-7", f.payments.payments[0].Metadata["orderId"])
}

func TestCreatePaymentResponseOmitsInternalFields(t *testing.T) {
	f := newPaymentHandlerFixture(t)

	body, _ := json.Marshal(map[string]interface{}{
		"amount":          10,
		"paymentMethodId": f.method.ID.String(),
		"metadata":        map[string]interface{}{"internalNote": "do not echo"},
	})
	rec := httptest.NewRecorder()
	f.handler.CreatePayment(rec, authedRequest(f.merchant, http.MethodPost, "/api/payments", body))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Exactly the public projection, nothing else.
	for _, key := range []string{"id", "reference", "amount", "currency", "status", "createdAt", "updatedAt"} {
		require.Contains(t, resp.Data, key)
	}
	for _, key := range []string{"metadata", "merchantId", "paymentMethodId", "gatewayReference", "gatewayResponseCode", "errorMessage", "completedAt", "ipAddress"} {
		require.NotContains(t, resp.Data, key)
	}
}

func TestCreatePaymentEndpointBadAmount(t *testing.T) {
	f := newPaymentHandlerFixture(t)

	body, _ := json.Marshal(map[string]interface{}{
		"amount":          0,
		"paymentMethodId": f.method.ID.String(),
	})
	rec := httptest.NewRecorder()
	f.handler.CreatePayment(rec, authedRequest(f.merchant, http.MethodPost, "/api/payments", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePaymentEndpointBadMethodID(t *testing.T) {
	f := newPaymentHandlerFixture(t)

	body, _ := json.Marshal(map[string]interface{}{
		"amount":          10,
		"paymentMethodId": "not-a-uuid",
	})
	rec := httptest.NewRecorder()
	f.handler.CreatePayment(rec, authedRequest(f.merchant, http.MethodPost, "/api/payments", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPaymentEndpoint(t *testing.T) {
	f := newPaymentHandlerFixture(t)
	require.NoError(t, f.payments.Create(&domain.Payment{
		Reference:        "PAY-AAAA0001",
		Amount:           10,
		Currency:         "USD",
		Status:           domain.StatusCompleted,
		Metadata:         map[string]interface{}{"orderId": "ORD-1"},
		GatewayReference: "gw-1",
		MerchantID:       f.merchant.ID,
	}))

	req := authedRequest(f.merchant, http.MethodGet, "/api/payments/PAY-AAAA0001", nil)
	req = mux.SetURLVars(req, map[string]string{"reference": "PAY-AAAA0001"})
	rec := httptest.NewRecorder()

	f.handler.GetPayment(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "PAY-AAAA0001", resp.Data["reference"])
	require.Equal(t, "COMPLETED", resp.Data["status"])
	require.NotContains(t, resp.Data, "metadata")
	require.NotContains(t, resp.Data, "gatewayReference")
	require.NotContains(t, resp.Data, "merchantId")
}

func TestGetPaymentEndpointForbidden(t *testing.T) {
	f := newPaymentHandlerFixture(t)
	require.NoError(t, f.payments.Create(&domain.Payment{
		Reference:  "PAY-AAAA0001",
		Amount:     10,
		MerchantID: uuid.New(),
	}))

	req := authedRequest(f.merchant, http.MethodGet, "/api/payments/PAY-AAAA0001", nil)
	req = mux.SetURLVars(req, map[string]string{"reference": "PAY-AAAA0001"})
	rec := httptest.NewRecorder()

	f.handler.GetPayment(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetPaymentEndpointNotFound(t *testing.T) {
	f := newPaymentHandlerFixture(t)

	req := authedRequest(f.merchant, http.MethodGet, "/api/payments/PAY-MISSING1", nil)
	req = mux.SetURLVars(req, map[string]string{"reference": "PAY-MISSING1"})
	rec := httptest.NewRecorder()

	f.handler.GetPayment(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPaymentsEndpoint(t *testing.T) {
	f := newPaymentHandlerFixture(t)
	for i := 0; i < 12; i++ {
		require.NoError(t, f.payments.Create(&domain.Payment{
			Reference:  fmt.Sprintf("PAY-%08d", i),
			Amount:     float64(i + 1),
			MerchantID: f.merchant.ID,
		}))
	}

	rec := httptest.NewRecorder()
	f.handler.ListPayments(rec, authedRequest(f.merchant, http.MethodGet, "/api/payments/merchant?page=2&limit=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    []PaymentProjection `json:"data"`
		Meta    PaginationMeta      `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, int64(12), resp.Meta.Total)
	require.Equal(t, 2, resp.Meta.Page)
	require.Equal(t, 10, resp.Meta.Limit)
	require.Equal(t, 2, resp.Meta.PageCount)
}

func TestListPaymentMethodsEndpointMasks(t *testing.T) {
	f := newPaymentHandlerFixture(t)
	f.methods.methods[0].Configuration = map[string]interface{}{"cardNumber": "4242424242424242"}

	rec := httptest.NewRecorder()
	f.handler.ListPaymentMethods(rec, authedRequest(f.merchant, http.MethodGet, "/api/payments/payment-methods", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.PaymentMethod `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "************4242", resp.Data[0].Configuration["cardNumber"])
}

func TestEndpointsRequireMerchantContext(t *testing.T) {
	f := newPaymentHandlerFixture(t)

	rec := httptest.NewRecorder()
	f.handler.ListPayments(rec, httptest.NewRequest(http.MethodGet, "/api/payments/merchant", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
