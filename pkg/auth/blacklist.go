package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
)

// TokenStore tracks issued and revoked token ids in Redis.
//
// RequireCache decides how a Redis outage is treated: when true any Redis
// error fails the operation, when false the error is logged and the token
// is treated as not revoked.
type TokenStore struct {
	client       *redis.Client
	requireCache bool
}

// NewTokenStore creates a token store around an already-connected Redis
// client. The client may be nil when Redis is not configured.
func NewTokenStore(client *redis.Client, requireCache bool) *TokenStore {
	return &TokenStore{client: client, requireCache: requireCache}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// Remember records an issued token id so active sessions can be inspected.
// Best-effort regardless of RequireCache: login must not depend on Redis.
func (s *TokenStore) Remember(ctx context.Context, jti, merchantID string, ttl time.Duration) {
	if s.client == nil {
		return
	}
	if err := s.client.Set(ctx, "tokens:"+jti, merchantID, ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("jti", jti).Msg("Failed to record issued token")
	}
}

// Blacklist revokes a token id for the remainder of its lifetime.
func (s *TokenStore) Blacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if s.client == nil {
		if s.requireCache {
			return fmt.Errorf("token blacklist unavailable: no Redis client")
		}
		logger.Warn(ctx).Str("jti", jti).Msg("Redis not configured, token not blacklisted")
		return nil
	}

	if err := s.client.Set(ctx, "blacklist:"+jti, "1", ttl).Err(); err != nil {
		if s.requireCache {
			return fmt.Errorf("failed to blacklist token: %w", err)
		}
		logger.Warn(ctx).Err(err).Str("jti", jti).Msg("Redis error blacklisting token")
	}
	return nil
}

// IsBlacklisted reports whether a token id has been revoked.
func (s *TokenStore) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if s.client == nil {
		if s.requireCache {
			return false, fmt.Errorf("token blacklist unavailable: no Redis client")
		}
		return false, nil
	}

	n, err := s.client.Exists(ctx, "blacklist:"+jti).Result()
	if err != nil {
		if s.requireCache {
			return false, fmt.Errorf("failed to check token blacklist: %w", err)
		}
		logger.Warn(ctx).Err(err).Str("jti", jti).Msg("Redis error checking token blacklist")
		return false, nil
	}

	return n > 0, nil
}
