package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"session-auth/internal/auth/credentials"
	"session-auth/internal/logger"
	"session-auth/internal/session"
)

const (
	DefaultSessionTTL   = time.Minute
	DefaultStoreTimeout = 5 * time.Second
)

// IssuedSession is the result of a successful login. The boundary turns it
// into a session cookie.
type IssuedSession struct {
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

// SessionStatus is the result of a session check.
type SessionStatus struct {
	Authenticated bool
	UserID        string
	ExpiresAt     time.Time
}

type Service struct {
	users        credentials.Store
	hasher       credentials.Hasher
	sessions     session.Store
	sessionTTL   time.Duration
	storeTimeout time.Duration
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func NewService(
	users credentials.Store,
	hasher credentials.Hasher,
	sessions session.Store,
	opts ...Option,
) *Service {
	s := &Service{
		users:        users,
		hasher:       hasher,
		sessions:     sessions,
		sessionTTL:   DefaultSessionTTL,
		storeTimeout: DefaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionTTL is the lifetime of issued sessions; the cookie Max-Age must match it.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *Service) Register(
	ctx context.Context,
	email string,
	password string,
) (*credentials.UserSummary, error) {

	email = credentials.NormalizeEmail(email)
	if err := validateInput(email, password); err != nil {
		return nil, err
	}

	// 1. Reject known emails early
	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	// 2. Hash password
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, credentials.ErrPasswordRejected) {
			return nil, fmt.Errorf("%w: password is too long", ErrValidation)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Insert; the store's uniqueness check wins a concurrent race
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.users.Create(storeCtx, email, hash)
	if errors.Is(err, credentials.ErrDuplicateUser) {
		return nil, ErrDuplicateUser
	}
	if err != nil {
		return nil, s.storeFailure("create user", err)
	}

	logger.Info("user registered", map[string]any{
		"user_id": user.ID,
	})

	summary := user.Summary()
	return &summary, nil
}

func (s *Service) Login(
	ctx context.Context,
	email string,
	password string,
) (*IssuedSession, error) {

	email = credentials.NormalizeEmail(email)
	if err := validateInput(email, password); err != nil {
		return nil, err
	}

	// 1. Find user
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// hide whether user exists or not
		logger.Info("login rejected", map[string]any{"reason": "unknown_email"})
		return nil, ErrInvalidCredentials
	}

	// 2. Verify password
	if !s.hasher.Verify(password, user.PasswordHash) {
		logger.Info("login rejected", map[string]any{
			"reason":  "wrong_password",
			"user_id": user.ID,
		})
		return nil, ErrInvalidCredentials
	}

	// 3. Create session
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	sess, err := s.sessions.Create(storeCtx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, s.storeFailure("create session", err)
	}

	logger.Info("session issued", map[string]any{
		"user_id":    user.ID,
		"expires_at": sess.ExpiresAt,
	})

	return &IssuedSession{
		SessionID: sess.ID,
		UserID:    sess.UserID,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// CheckSession reports whether sessionID names a live session. Absent and
// expired sessions both yield an unauthenticated status with a nil error;
// the error is reserved for store failures.
func (s *Service) CheckSession(ctx context.Context, sessionID string) (SessionStatus, error) {
	if sessionID == "" {
		return SessionStatus{}, nil
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	sess, err := s.sessions.Get(storeCtx, sessionID)
	if err != nil {
		return SessionStatus{}, s.storeFailure("get session", err)
	}
	if sess == nil {
		return SessionStatus{}, nil
	}

	return SessionStatus{
		Authenticated: true,
		UserID:        sess.UserID,
		ExpiresAt:     sess.ExpiresAt,
	}, nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (*credentials.User, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.users.FindByEmail(storeCtx, email)
	if err != nil {
		return nil, s.storeFailure("find user", err)
	}
	return user, nil
}

func (s *Service) storeFailure(op string, err error) error {
	logger.Error("store call failed", map[string]any{
		"op":       op,
		"error":    err.Error(),
		"deadline": errors.Is(err, context.DeadlineExceeded),
	})
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}

func validateInput(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}
