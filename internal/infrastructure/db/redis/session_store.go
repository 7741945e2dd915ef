package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/webware/award-board/internal/core/domain"
)

const (
	sessionKeyPrefix  = "session:"
	defaultSessionTTL = 24 * time.Hour
)

// SessionStore keeps session tokens in Redis with an idle TTL.
// Key format: session:<token> -> username
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// A default TTL is applied when none is provided.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Put(ctx context.Context, token, username string) error {
	if err := s.client.Set(ctx, sessionKeyPrefix+token, username, s.ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Get resolves a token to its username and refreshes the idle TTL in the
// same round trip. A missing key means the session lapsed or never existed.
func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	username, err := s.client.GetEx(ctx, sessionKeyPrefix+token, s.ttl).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSessionExpired
		}
		return "", fmt.Errorf("get session: %w", err)
	}
	return username, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
