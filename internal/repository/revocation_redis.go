package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevocationStore keeps one key per revoked token id. Each key expires
// together with the token it denies, so Redis does the garbage collection.
type RedisRevocationStore struct {
	client  redis.UniversalClient
	prefix  string
	nowFunc func() time.Time
}

// NewRedisRevocationStore constructs the store. now may be nil.
func NewRedisRevocationStore(client redis.UniversalClient, prefix string, now func() time.Time) *RedisRevocationStore {
	if now == nil {
		now = time.Now
	}
	return &RedisRevocationStore{client: client, prefix: prefix, nowFunc: now}
}

// Revoke sets the key with NX so a repeated revoke keeps the first entry.
// A token that is already past expiry needs no entry.
func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.nowFunc())
	if ttl <= 0 {
		return nil
	}
	return s.client.SetNX(ctx, s.key(tokenID), expiresAt.Unix(), ttl).Err()
}

// IsRevoked reports whether a key exists for the token id.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisRevocationStore) key(tokenID string) string {
	return s.prefix + tokenID
}
