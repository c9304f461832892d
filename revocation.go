package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "revoked:"

// RedisRevocationStore blacklists tokens in redis with a TTL equal to the
// token's remaining validity window, so an entry never outlives the token it
// blocks and storage stays bounded without any cleanup job.
type RedisRevocationStore struct {
	client *redis.Client
	logger Logger
}

var _ RevocationStore = (*RedisRevocationStore)(nil)

// NewRedisRevocationStore creates a revocation store on the given client
func NewRedisRevocationStore(client *redis.Client, logger Logger) *RedisRevocationStore {
	if logger == nil {
		logger = defLogger{}
	}
	return &RedisRevocationStore{client: client, logger: logger}
}

// Revoke inserts the token with the given TTL. Idempotent: re-revoking an
// already blacklisted token keeps the original entry and its expiry. A
// non-positive TTL is a no-op, the token is already naturally dead.
func (s *RedisRevocationStore) Revoke(ctx context.Context, token string, remainingTTL time.Duration) error {
	if token == "" || remainingTTL <= 0 {
		return nil
	}

	if err := s.client.SetNX(ctx, revocationKeyPrefix+token, 1, remainingTTL).Err(); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to revoke token")
	}

	return nil
}

// IsRevoked reports whether the token is currently blacklisted. Entries that
// hit their TTL become invisible without an explicit delete.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	n, err := s.client.Exists(ctx, revocationKeyPrefix+token).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check token revocation")
	}

	return n > 0, nil
}
