package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Expired records are purged
// lazily on read and, when a cleanup interval is set, by a background reaper.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time

	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

type MemoryOption func(*MemoryStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMemoryStore(cleanupInterval time.Duration, opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if cleanupInterval > 0 {
		m.ticker = time.NewTicker(cleanupInterval)
		go m.cleanupLoop()
	}

	return m
}

func (m *MemoryStore) Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error) {
	if err := validateCreate(userID, ttl); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for range maxIDAttempts {
		id, err := GenerateID()
		if err != nil {
			return nil, err
		}
		if _, exists := m.sessions[id]; exists {
			continue
		}

		now := m.now()
		s := Session{
			ID:        id,
			UserID:    userID,
			CreatedAt: now,
			ExpiresAt: now.Add(ttl),
		}
		m.sessions[id] = s

		return &s, nil
	}

	return nil, errIDCollision
}

func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	s, exists := m.sessions[sessionID]
	m.mu.RUnlock()

	if !exists {
		return nil, nil
	}

	if !s.ValidAt(m.now()) {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		return nil, nil
	}

	return &s, nil
}

// DeleteExpired removes every session whose expiry has passed.
func (m *MemoryStore) DeleteExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, s := range m.sessions {
		if !s.ValidAt(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored records, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup goroutine.
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.DeleteExpired()
		case <-m.done:
			return
		}
	}
}
