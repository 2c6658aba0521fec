package credentials

import (
	"context"
	"errors"
)

var ErrDuplicateUser = errors.New("credentials: user already exists")

// Store persists users and their password hashes. Emails passed in are
// already normalized.
type Store interface {
	// FindByEmail returns nil, nil when no user has the email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create must enforce email uniqueness atomically and return
	// ErrDuplicateUser on conflict.
	Create(ctx context.Context, email, passwordHash string) (*User, error)
}
