package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-auth/internal/session"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStore_Create(t *testing.T) {
	clock := newFakeClock()
	store := session.NewMemoryStore(0, session.WithClock(clock.Now))
	defer store.Close()

	ctx := context.Background()

	t.Run("successful create", func(t *testing.T) {
		sess, err := store.Create(ctx, "user-1", time.Minute)
		require.NoError(t, err)

		assert.NotEmpty(t, sess.ID)
		assert.Equal(t, "user-1", sess.UserID)
		assert.Equal(t, clock.Now(), sess.CreatedAt)
		assert.Equal(t, clock.Now().Add(time.Minute), sess.ExpiresAt)
	})

	t.Run("ids are unique", func(t *testing.T) {
		a, err := store.Create(ctx, "user-1", time.Minute)
		require.NoError(t, err)
		b, err := store.Create(ctx, "user-1", time.Minute)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := store.Create(ctx, "", time.Minute)
		assert.ErrorIs(t, err, session.ErrMissingUserID)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		_, err := store.Create(ctx, "user-1", 0)
		assert.ErrorIs(t, err, session.ErrInvalidTTL)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Create(cctx, "user-1", time.Minute)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemoryStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown session", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		defer store.Close()

		sess, err := store.Get(ctx, "nonexistent")
		assert.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("valid until expiry then gone for good", func(t *testing.T) {
		clock := newFakeClock()
		store := session.NewMemoryStore(0, session.WithClock(clock.Now))
		defer store.Close()

		created, err := store.Create(ctx, "user-1", time.Minute)
		require.NoError(t, err)

		clock.Advance(59 * time.Second)
		got, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ExpiresAt, got.ExpiresAt)

		clock.Advance(time.Second) // now == expiresAt
		got, err = store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, 0, store.Len())

		clock.Advance(-time.Hour)
		got, err = store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got, "purged session must not come back")
	})

	t.Run("reads do not extend expiry", func(t *testing.T) {
		clock := newFakeClock()
		store := session.NewMemoryStore(0, session.WithClock(clock.Now))
		defer store.Close()

		created, err := store.Create(ctx, "user-1", time.Minute)
		require.NoError(t, err)

		for range 5 {
			clock.Advance(10 * time.Second)
			got, err := store.Get(ctx, created.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, created.ExpiresAt, got.ExpiresAt)
		}
	})
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	clock := newFakeClock()
	store := session.NewMemoryStore(0, session.WithClock(clock.Now))
	defer store.Close()

	ctx := context.Background()

	_, err := store.Create(ctx, "short", time.Second)
	require.NoError(t, err)
	long, err := store.Create(ctx, "long", time.Hour)
	require.NoError(t, err)

	clock.Advance(time.Minute)

	assert.Equal(t, 1, store.DeleteExpired())
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, long.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestMemoryStore_CleanupLoop(t *testing.T) {
	store := session.NewMemoryStore(10 * time.Millisecond)
	defer store.Close()

	_, err := store.Create(context.Background(), "user-1", 20*time.Millisecond)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_Close(t *testing.T) {
	store := session.NewMemoryStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()

	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan string, 100)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := store.Create(ctx, "user-1", time.Minute)
			if assert.NoError(t, err) {
				ids <- s.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{})
	for id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}
