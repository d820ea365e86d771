package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenStoreWithoutRedisBestEffort(t *testing.T) {
	store := NewTokenStore(nil, false)
	ctx := context.Background()

	// With no cache required, a missing Redis client degrades gracefully.
	require.NoError(t, store.Blacklist(ctx, "jti-1", time.Hour))

	blacklisted, err := store.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, blacklisted)

	store.Remember(ctx, "jti-1", "merchant-1", time.Hour)
}

func TestTokenStoreWithoutRedisRequired(t *testing.T) {
	store := NewTokenStore(nil, true)
	ctx := context.Background()

	require.Error(t, store.Blacklist(ctx, "jti-1", time.Hour))

	_, err := store.IsBlacklisted(ctx, "jti-1")
	require.Error(t, err)
}

func TestTokenStoreExpiredTTLNoop(t *testing.T) {
	store := NewTokenStore(nil, true)

	// A token past its expiry needs no blacklist entry.
	require.NoError(t, store.Blacklist(context.Background(), "jti-1", 0))
	require.NoError(t, store.Blacklist(context.Background(), "jti-1", -time.Minute))
}
