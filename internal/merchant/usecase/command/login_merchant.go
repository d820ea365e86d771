package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/auth"
)

// ErrInvalidCredentials is returned for unknown emails and wrong
// passwords alike, so login failures do not leak which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginMerchantCommand represents the command to log a merchant in
type LoginMerchantCommand struct {
	Email    string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	MerchantID  string `json:"merchantId"`
	Email       string `json:"email"`
	Name        string `json:"name"`
}

// LoginMerchantHandler handles merchant login command
type LoginMerchantHandler struct {
	repo   domain.MerchantRepository
	tokens *auth.TokenManager
	store  *auth.TokenStore
}

// NewLoginMerchantHandler creates a new login handler
func NewLoginMerchantHandler(repo domain.MerchantRepository, tokens *auth.TokenManager, store *auth.TokenStore) *LoginMerchantHandler {
	return &LoginMerchantHandler{repo: repo, tokens: tokens, store: store}
}

// Handle executes the login command
func (h *LoginMerchantHandler) Handle(ctx context.Context, cmd LoginMerchantCommand) (*LoginResponse, error) {
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	merchant, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(merchant.Password, cmd.Password) {
		return nil, ErrInvalidCredentials
	}

	token, jti, err := h.tokens.Generate(merchant.ID.String(), merchant.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Session bookkeeping only; login succeeds even when Redis is down.
	h.store.Remember(ctx, jti, merchant.ID.String(), h.tokens.ExpiresIn())

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		MerchantID:  merchant.ID.String(),
		Email:       merchant.Email,
		Name:        merchant.Name,
	}, nil
}
