package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/auth"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
)

type contextKey string

// merchantContextKey carries the authenticated merchant through the
// request context.
const merchantContextKey contextKey = "merchant"

// AuthMiddleware authenticates merchant requests: bearer token, signature
// and expiry, blacklist check, merchant lookup, active flag.
type AuthMiddleware struct {
	tokens    *auth.TokenManager
	store     *auth.TokenStore
	merchants domain.MerchantRepository
}

// NewAuthMiddleware creates the auth middleware
func NewAuthMiddleware(tokens *auth.TokenManager, store *auth.TokenStore, merchants domain.MerchantRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, store: store, merchants: merchants}
}

// Require wraps a handler that needs an authenticated, active merchant.
func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   "No token provided",
			})
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   "Invalid token",
			})
			return
		}

		blacklisted, err := m.store.IsBlacklisted(r.Context(), claims.ID)
		if err != nil {
			logger.Error(r.Context()).Err(err).Msg("Token blacklist check failed")
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   "Authentication service unavailable",
			})
			return
		}
		if blacklisted {
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   "Token has been revoked",
			})
			return
		}

		merchantID, err := uuid.Parse(claims.Subject)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   "Invalid token",
			})
			return
		}

		merchant, err := m.merchants.FindByID(merchantID)
		if err != nil || !merchant.IsActive {
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   "Merchant not found or inactive",
			})
			return
		}

		ctx := context.WithValue(r.Context(), merchantContextKey, merchant)
		next(w, r.WithContext(ctx))
	}
}

// MerchantFromContext returns the authenticated merchant attached by
// Require.
func MerchantFromContext(ctx context.Context) (*domain.Merchant, bool) {
	merchant, ok := ctx.Value(merchantContextKey).(*domain.Merchant)
	return merchant, ok
}

// ContextWithMerchant attaches a merchant to the context. Exposed for
// handler tests.
func ContextWithMerchant(ctx context.Context, merchant *domain.Merchant) context.Context {
	return context.WithValue(ctx, merchantContextKey, merchant)
}

func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
