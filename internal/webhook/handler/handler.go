package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	paymenthandler "github.com/hayzedDev/istrategy-assessment-test/internal/payment/handler"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/usecase/command"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/metrics"
)

// signatureHeader is the gateway's webhook authenticity header. Only its
// presence is checked; the gateway sandbox does not publish a signing
// key, so there is nothing to verify the digest against yet.
const signatureHeader = "X-Webhook-Signature"

// WebhookHandler handles payment gateway webhook callbacks
type WebhookHandler struct {
	applyHandler *command.ApplyStatusUpdateHandler
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(applyHandler *command.ApplyStatusUpdateHandler) *WebhookHandler {
	return &WebhookHandler{applyHandler: applyHandler}
}

// Response is the JSON envelope shared by all endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HandlePaymentWebhook handles POST /api/webhooks/payment/{reference}.
// Replayed deliveries for a settled payment return 200 with the current
// state so the gateway stops retrying.
func (h *WebhookHandler) HandlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	// Reject unsigned deliveries before touching the store.
	if r.Header.Get(signatureHeader) == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Missing webhook signature",
		})
		return
	}

	reference := mux.Vars(r)["reference"]

	var req struct {
		Status              string                 `json:"status"`
		GatewayReference    string                 `json:"gatewayReference"`
		GatewayResponseCode string                 `json:"gatewayResponseCode"`
		ErrorMessage        string                 `json:"errorMessage"`
		Metadata            map[string]interface{} `json:"metadata"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	metrics.WebhooksReceived.Inc()

	payment, _, err := h.applyHandler.Handle(r.Context(), command.ApplyStatusUpdateCommand{
		Reference:           reference,
		Status:              domain.PaymentStatus(req.Status),
		GatewayReference:    req.GatewayReference,
		GatewayResponseCode: req.GatewayResponseCode,
		ErrorMessage:        req.ErrorMessage,
		Metadata:            req.Metadata,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		case errors.Is(err, domain.ErrPaymentNotFound):
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
		default:
			logger.Error(r.Context()).Err(err).Str("reference", reference).Msg("Webhook processing failed")
			respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Internal server error"})
		}
		return
	}

	// First delivery and terminal replay get the identical envelope, so
	// retries are observationally the same as their original delivery.
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    paymenthandler.ProjectPayment(payment),
	})
}

// RegisterRoutes registers webhook routes. Gateway callbacks carry no
// merchant token, so these routes sit outside the auth middleware.
func (h *WebhookHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/webhooks/payment/{reference}", h.HandlePaymentWebhook).Methods("POST")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
