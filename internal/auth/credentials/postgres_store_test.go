package credentials_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-auth/internal/auth/credentials"
	"session-auth/internal/db"
)

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, dsn, 1, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(ctx, conn.DB))

	store := credentials.NewPostgresStore(conn)
	email := uuid.NewString() + "@x.com"

	absent, err := store.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Nil(t, absent)

	created, err := store.Create(ctx, email, "hash")
	require.NoError(t, err)

	found, err := store.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	_, err = store.Create(ctx, email, "other")
	assert.ErrorIs(t, err, credentials.ErrDuplicateUser)
}
