package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"session-auth/internal/db"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var (
		u  User
		id uuid.UUID
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&id, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("credentials: find by email: %w", err)
	}

	u.ID = id.String()
	return &u, nil
}

func (s *PostgresStore) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
	)

	// the unique index on LOWER(email) settles concurrent registrations
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, email, passwordHash).Scan(&id, &createdAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("credentials: insert user: %w", err)
	}

	return &User{
		ID:           id.String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}, nil
}
