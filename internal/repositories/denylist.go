package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookie-app/bookie-api/internal/logger"
)

// TokenDenylistRepository marks revoked token ids in Redis. A denied jti
// stays present for the configured TTL, after which the entry expires; the
// TTL should cover the longest token lifetime for revocation to hold until
// natural expiry.
type TokenDenylistRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenDenylistRepository creates a denylist backed by the given Redis client.
func NewTokenDenylistRepository(client *redis.Client, ttl time.Duration) *TokenDenylistRepository {
	return &TokenDenylistRepository{
		client: client,
		ttl:    ttl,
	}
}

func denylistKey(jti string) string {
	return fmt.Sprintf("token_denylist:%s", jti)
}

// Deny marks a token id as revoked. Idempotent.
func (r *TokenDenylistRepository) Deny(ctx context.Context, jti string) error {
	key := denylistKey(jti)

	err := r.client.Set(ctx, key, "", r.ttl).Err()

	logger.Log.Infow(
		"key", key,
		"ttl", r.ttl,
		"error", err,
	)

	return err
}

// IsDenied reports whether a token id has been revoked.
func (r *TokenDenylistRepository) IsDenied(ctx context.Context, jti string) (bool, error) {
	key := denylistKey(jti)

	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		return false, err
	}

	return n > 0, nil
}
