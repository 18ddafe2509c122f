package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// TokenCache implements ports.TokenCache using Redis. The token and its
// expiry live under one hash key whose TTL matches the token lifetime,
// so a stale token can never outlive its own expiry in the cache.
type TokenCache struct {
	client *goredis.Client
	key    string
}

// NewTokenCache creates a new Redis-backed sponsor token cache.
func NewTokenCache(client *goredis.Client) *TokenCache {
	return &TokenCache{
		client: client,
		key:    "sponsor:token",
	}
}

// Get retrieves the cached token and its expiry.
// Returns ("", zero, nil) on a miss.
func (c *TokenCache) Get(ctx context.Context) (string, time.Time, error) {
	vals, err := c.client.HMGet(ctx, c.key, "token", "expires_at").Result()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("redis token get: %w", err)
	}
	token, ok := vals[0].(string)
	if !ok || token == "" {
		return "", time.Time{}, nil
	}
	expiresStr, ok := vals[1].(string)
	if !ok {
		return "", time.Time{}, nil
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, expiresStr)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("redis token expiry parse: %w", err)
	}
	return token, expiresAt, nil
}

// Set stores the token with a TTL bounded by its expiry.
func (c *TokenCache) Set(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis token set: token already expired at %s", expiresAt)
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, c.key, "token", token, "expires_at", expiresAt.Format(time.RFC3339Nano))
	pipe.Expire(ctx, c.key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis token set: %w", err)
	}
	return nil
}
