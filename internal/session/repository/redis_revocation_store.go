package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/codecollab/server/internal/errors"
	sessionDomain "github.com/codecollab/server/internal/session/domain"
)

// RedisRevocationStore keeps revoked tokens as redis keys holding the logout marker.
// Redis expires the keys, so no cleanup is needed.
type RedisRevocationStore struct {
	client redis.UniversalClient
}

// Revoke runs SET token "logout" EX ttl. Overwriting an existing key resets its TTL.
func (r *RedisRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, token, sessionDomain.RevokedMarker, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// IsRevoked runs EXISTS token.
func (r *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, token).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check token revocation")
	}
	return n > 0, nil
}

// Ping checks the redis connection.
func (r *RedisRevocationStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return apperrors.Wrap(err, "failed to ping redis")
	}
	return nil
}

// NewRedisRevocationStore creates a store on top of an existing client.
func NewRedisRevocationStore(client redis.UniversalClient) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

// NewRedisClient parses a redis:// or rediss:// URL and opens a client.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse redis url")
	}
	return redis.NewClient(opts), nil
}
