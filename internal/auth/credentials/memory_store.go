package credentials

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps users in process memory. Suitable for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]User)}
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MemoryStore) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[email]; exists {
		return nil, ErrDuplicateUser
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.byEmail[email] = u

	return &u, nil
}
