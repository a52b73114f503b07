package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker tracks refresh token JTIs that must no longer be honored.
// Entries expire together with the token they shadow.
type Revoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "auth:revoked:"

// RedisRevoker is the Redis-backed denylist implementation.
type RedisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker constructs a revoker over the shared client.
func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client}
}

// Revoke denylists the JTI until the token would expire on its own.
func (r *RedisRevoker) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the JTI is on the denylist.
func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
