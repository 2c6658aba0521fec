package credentials_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"session-auth/internal/auth/credentials"
)

func TestBcryptHasher(t *testing.T) {
	h := credentials.NewBcryptHasher(bcrypt.MinCost)

	passwords := []string{"pw1", "correct horse battery staple", "ünïcødé", " leading space"}

	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			hash, err := h.Hash(p)
			require.NoError(t, err)

			assert.NotEqual(t, p, hash)
			assert.True(t, h.Verify(p, hash))
			assert.False(t, h.Verify(p+"x", hash))
			assert.False(t, h.Verify("", hash))
		})
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	h := credentials.NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("pw1")
	require.NoError(t, err)
	b, err := h.Hash("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("pw1", a))
	assert.True(t, h.Verify("pw1", b))
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := credentials.NewBcryptHasher(bcrypt.MinCost)

	for _, hash := range []string{"", "plaintext", "$2a$04$short"} {
		assert.False(t, h.Verify("pw1", hash))
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := credentials.NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, credentials.ErrPasswordRejected)
}

func TestNewBcryptHasher_CostOutOfRange(t *testing.T) {
	h := credentials.NewBcryptHasher(99)

	hash, err := h.Hash("pw1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
