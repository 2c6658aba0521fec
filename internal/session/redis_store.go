package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed session store. Expiry is delegated to
// key TTLs; reads also check ExpiresAt so clock skew never revives a session.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
		now:    time.Now,
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error) {
	if err := validateCreate(userID, ttl); err != nil {
		return nil, err
	}

	for range maxIDAttempts {
		id, err := GenerateID()
		if err != nil {
			return nil, err
		}

		now := r.now()
		s := Session{
			ID:        id,
			UserID:    userID,
			CreatedAt: now,
			ExpiresAt: now.Add(ttl),
		}

		data, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("session: failed to marshal: %w", err)
		}

		ok, err := r.client.SetNX(ctx, r.key(id), data, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("session: redis set: %w", err)
		}
		if ok {
			return &s, nil
		}
	}

	return nil, errIDCollision
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}

	var s Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	if !s.ValidAt(r.now()) {
		return nil, nil
	}

	return &s, nil
}
