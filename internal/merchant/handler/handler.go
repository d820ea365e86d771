package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/usecase/command"
	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/usecase/query"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
)

// MerchantHandler handles HTTP requests for merchant auth
type MerchantHandler struct {
	loginHandler  *command.LoginMerchantHandler
	logoutHandler *command.LogoutMerchantHandler
	listHandler   *query.ListMerchantsHandler
	authMw        *AuthMiddleware
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(
	loginHandler *command.LoginMerchantHandler,
	logoutHandler *command.LogoutMerchantHandler,
	listHandler *query.ListMerchantsHandler,
	authMw *AuthMiddleware,
) *MerchantHandler {
	return &MerchantHandler{
		loginHandler:  loginHandler,
		logoutHandler: logoutHandler,
		listHandler:   listHandler,
		authMw:        authMw,
	}
}

// Response is the JSON envelope shared by all endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Login handles POST /api/auth/login
func (h *MerchantHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginMerchantCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, command.ErrInvalidCredentials) {
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   "Invalid credentials",
			})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Login failed")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    resp,
	})
}

// Logout handles POST /api/auth/logout
func (h *MerchantHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)

	if err := h.logoutHandler.Handle(r.Context(), command.LogoutMerchantCommand{Token: token}); err != nil {
		if errors.Is(err, command.ErrInvalidToken) {
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   "Invalid token",
			})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Logout failed")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to log out",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "You have been successfully logged out",
	})
}

// ListMerchants handles GET /api/auth/merchants
func (h *MerchantHandler) ListMerchants(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.listHandler.Handle()
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list merchants")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list merchants",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"merchants": merchants,
			"total":     len(merchants),
		},
	})
}

// AuthMiddleware exposes the configured auth middleware for other route
// groups.
func (h *MerchantHandler) AuthMiddleware() *AuthMiddleware {
	return h.authMw
}

// RegisterRoutes registers all auth routes
func (h *MerchantHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/api/auth/logout", h.Logout).Methods("POST")
	router.HandleFunc("/api/auth/merchants", h.ListMerchants).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
