package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh:"

// SessionStore tracks issued refresh tokens by jti so a token that was never
// issued here, or whose session lapsed, cannot mint new access tokens.
type SessionStore interface {
	Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
}

// RedisSessionStore is the Redis-backed session store.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a session store over an established client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Save records a refresh token session with the token's remaining lifetime.
func (s *RedisSessionStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	key := refreshKeyPrefix + jti
	if err := s.client.Set(ctx, key, strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Exists reports whether the refresh session is still live.
func (s *RedisSessionStore) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, refreshKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}
