package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMissingUserID = errors.New("session: missing user_id")
	ErrInvalidTTL    = errors.New("session: ttl must be positive")
)

// maxIDAttempts bounds retries on the (practically impossible) ID collision.
const maxIDAttempts = 3

var errIDCollision = errors.New("session: could not allocate a unique id")

// Session is the server-side record of a successful login. It references a
// user; it does not own one.
type Session struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// ValidAt reports whether the session is usable at t. Expiry is exclusive:
// at t == ExpiresAt the session is already gone.
func (s *Session) ValidAt(t time.Time) bool {
	return s != nil && t.Before(s.ExpiresAt)
}

// Store persists sessions keyed by ID with TTL-based expiry.
type Store interface {
	// Create allocates a fresh ID and stores the record for ttl.
	Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error)

	// Get returns nil, nil for unknown and expired sessions alike. Reading
	// never extends expiry.
	Get(ctx context.Context, sessionID string) (*Session, error)
}

func validateCreate(userID string, ttl time.Duration) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	return nil
}
