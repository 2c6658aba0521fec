package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordRejected is returned when the hasher cannot accept a password,
// e.g. bcrypt's 72-byte input limit.
var ErrPasswordRejected = errors.New("password rejected by hasher")

// Hasher is a one-way salted password transform with constant-time verification.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt hasher. Costs outside bcrypt's range fall
// back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash hashes a plaintext password using bcrypt.
func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", ErrPasswordRejected, err)
		}
		return "", err
	}

	return string(bytes), nil
}

// Verify compares plaintext password with stored hash. A malformed hash is
// reported as a mismatch.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
