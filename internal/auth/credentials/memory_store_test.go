package credentials_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-auth/internal/auth/credentials"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := credentials.NewMemoryStore()

	t.Run("absent user", func(t *testing.T) {
		u, err := store.FindByEmail(ctx, "a@x.com")
		assert.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("create then find", func(t *testing.T) {
		created, err := store.Create(ctx, "a@x.com", "hash")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		found, err := store.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "hash", found.PasswordHash)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := store.Create(ctx, "a@x.com", "other")
		assert.ErrorIs(t, err, credentials.ErrDuplicateUser)
	})
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	store := credentials.NewMemoryStore()

	var (
		wg      sync.WaitGroup
		created atomic.Int32
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Create(ctx, "race@x.com", "hash"); err == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, created.Load())
}

func TestUser_Summary(t *testing.T) {
	u := credentials.User{ID: "id", Email: "a@x.com", PasswordHash: "secret-hash"}
	s := u.Summary()

	assert.Equal(t, "id", s.ID)
	assert.Equal(t, "a@x.com", s.Email)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", credentials.NormalizeEmail("  Alice@Example.COM\t"))
	assert.Equal(t, "", credentials.NormalizeEmail("   "))
}
