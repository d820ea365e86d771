package command

import (
	"context"
	"errors"
	"time"

	"github.com/hayzedDev/istrategy-assessment-test/pkg/auth"
)

// ErrInvalidToken is returned when the presented token cannot be
// verified.
var ErrInvalidToken = errors.New("invalid token")

// LogoutMerchantCommand represents the command to log a merchant out
type LogoutMerchantCommand struct {
	Token string
}

// LogoutMerchantHandler blacklists the token's jti for the remainder of
// its lifetime so it cannot be replayed.
type LogoutMerchantHandler struct {
	tokens *auth.TokenManager
	store  *auth.TokenStore
}

// NewLogoutMerchantHandler creates a new logout handler
func NewLogoutMerchantHandler(tokens *auth.TokenManager, store *auth.TokenStore) *LogoutMerchantHandler {
	return &LogoutMerchantHandler{tokens: tokens, store: store}
}

// Handle executes the logout command
func (h *LogoutMerchantHandler) Handle(ctx context.Context, cmd LogoutMerchantCommand) error {
	if cmd.Token == "" {
		return ErrInvalidToken
	}

	claims, err := h.tokens.Verify(cmd.Token)
	if err != nil {
		return ErrInvalidToken
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	return h.store.Blacklist(ctx, claims.ID, remaining)
}
