package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	merchantID := uuid.New().String()

	token, jti, err := manager.Generate(merchantID, "acme@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	require.Equal(t, merchantID, claims.Subject)
	require.Equal(t, "acme@example.com", claims.Email)
	require.Equal(t, jti, claims.ID)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenUniqueJTI(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	_, jti1, err := manager.Generate("m1", "a@example.com")
	require.NoError(t, err)
	_, jti2, err := manager.Generate("m1", "a@example.com")
	require.NoError(t, err)
	require.NotEqual(t, jti1, jti2)
}

func TestTokenWrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	token, _, err := manager.Generate("m1", "a@example.com")
	require.NoError(t, err)

	other := NewTokenManager("other-secret", time.Hour)
	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)
	token, _, err := manager.Generate("m1", "a@example.com")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	_, err := manager.Verify("not.a.token")
	require.Error(t, err)
}
