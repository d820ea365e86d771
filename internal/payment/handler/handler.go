package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	merchantdomain "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	merchanthandler "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/handler"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/usecase/command"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/usecase/query"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
)

// PaymentHandler handles HTTP requests for payments
type PaymentHandler struct {
	createHandler      *command.CreatePaymentHandler
	getHandler         *query.GetPaymentHandler
	listHandler        *query.ListPaymentsHandler
	listMethodsHandler *query.ListPaymentMethodsHandler
	authMw             *merchanthandler.AuthMiddleware
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	createHandler *command.CreatePaymentHandler,
	getHandler *query.GetPaymentHandler,
	listHandler *query.ListPaymentsHandler,
	listMethodsHandler *query.ListPaymentMethodsHandler,
	authMw *merchanthandler.AuthMiddleware,
) *PaymentHandler {
	return &PaymentHandler{
		createHandler:      createHandler,
		getHandler:         getHandler,
		listHandler:        listHandler,
		listMethodsHandler: listMethodsHandler,
		authMw:             authMw,
	}
}

// Response is the JSON envelope shared by all endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PaginationMeta describes the returned page.
type PaginationMeta struct {
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	PageCount int   `json:"pageCount"`
}

// PaymentProjection is the public view of a payment returned by every
// payment endpoint. Internal fields (client IP, metadata, gateway
// detail, ownership ids) never leave the service.
type PaymentProjection struct {
	ID        uuid.UUID            `json:"id"`
	Reference string               `json:"reference"`
	Amount    float64              `json:"amount"`
	Currency  string               `json:"currency"`
	Status    domain.PaymentStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// ProjectPayment maps a payment onto its public projection.
func ProjectPayment(p *domain.Payment) PaymentProjection {
	return PaymentProjection{
		ID:        p.ID,
		Reference: p.Reference,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProjectPayments maps a page of payments onto projections.
func ProjectPayments(payments []domain.Payment) []PaymentProjection {
	out := make([]PaymentProjection, len(payments))
	for i := range payments {
		out[i] = ProjectPayment(&payments[i])
	}
	return out
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	merchant, ok := merchanthandler.MerchantFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Unauthorized",
		})
		return
	}

	var req struct {
		Amount          float64                `json:"amount"`
		Currency        string                 `json:"currency"`
		PaymentMethodID string                 `json:"paymentMethodId"`
		Metadata        map[string]interface{} `json:"metadata"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	methodID, err := uuid.Parse(req.PaymentMethodID)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid paymentMethodId",
		})
		return
	}

	payment, err := h.createHandler.Handle(r.Context(), command.CreatePaymentCommand{
		MerchantID:      merchant.ID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		PaymentMethodID: methodID,
		Metadata:        req.Metadata,
		IPAddress:       clientIP(r),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Payment initiated",
		Data:    ProjectPayment(payment),
	})
}

// GetPayment handles GET /api/payments/{reference}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	merchant, ok := merchanthandler.MerchantFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Unauthorized",
		})
		return
	}

	reference := mux.Vars(r)["reference"]

	payment, err := h.getHandler.Handle(query.GetPaymentQuery{
		Reference:  reference,
		MerchantID: merchant.ID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ProjectPayment(payment),
	})
}

// ListPayments handles GET /api/payments/merchant
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	merchant, ok := merchanthandler.MerchantFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Unauthorized",
		})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.listHandler.Handle(query.ListPaymentsQuery{
		MerchantID: merchant.ID,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ProjectPayments(result.Items),
		Meta: PaginationMeta{
			Total:     result.Total,
			Page:      result.Page,
			Limit:     result.Limit,
			PageCount: result.PageCount,
		},
	})
}

// ListPaymentMethods handles GET /api/payments/payment-methods
func (h *PaymentHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	merchant, ok := merchanthandler.MerchantFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Unauthorized",
		})
		return
	}

	methods, err := h.listMethodsHandler.Handle(query.ListPaymentMethodsQuery{
		MerchantID: merchant.ID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    methods,
	})
}

// RegisterRoutes registers all payment routes. Static paths are
// registered before the {reference} catch-all so "merchant" and
// "payment-methods" never match as references.
func (h *PaymentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/payments", h.authMw.Require(h.CreatePayment)).Methods("POST")
	router.HandleFunc("/api/payments/merchant", h.authMw.Require(h.ListPayments)).Methods("GET")
	router.HandleFunc("/api/payments/payment-methods", h.authMw.Require(h.ListPaymentMethods)).Methods("GET")
	router.HandleFunc("/api/payments/{reference}", h.authMw.Require(h.GetPayment)).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func RegisterHealthCheck(router *mux.Router, serviceName string, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status":  "unhealthy",
					"service": serviceName,
					"error":   "database unreachable",
				})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": serviceName,
		})
	}).Methods("GET")
}

func (h *PaymentHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "You do not have access to this payment"})
	case errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrPaymentMethodNotFound),
		errors.Is(err, merchantdomain.ErrMerchantNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
	default:
		logger.Error(r.Context()).Err(err).Msg("Request failed")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Internal server error"})
	}
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
