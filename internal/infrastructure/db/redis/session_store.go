package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

const sessionPrefix = "session:"

// SessionStore persists sessions as single JSON records in Redis. The
// principal and its bearer token live in one value under one key, so both
// are always written and removed together.
type SessionStore struct {
	client *redis.Client
	prefix string
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, prefix: sessionPrefix}
}

func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrSessionExpired
	}

	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

// Get loads a session. A record that fails to decode is removed and
// reported as not found: a stale or corrupted record must never wedge the
// session, only empty it.
func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	if id == "" {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	key := s.prefix + id
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domain.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		_ = s.client.Del(ctx, key).Err()
		return domain.Session{}, domain.ErrSessionNotFound
	}

	// Redis TTL should have evicted expired records already; double-check.
	if sess.Expired() {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domain.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
