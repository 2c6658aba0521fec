package auth

import "errors"

var (
	// ErrValidation reports malformed input. The wrapped message is safe to
	// show to clients.
	ErrValidation = errors.New("validation failed")

	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStoreUnavailable wraps any backing-store failure, timeouts included.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotAuthenticated is the negative result of a session check. The
	// service reports it through SessionStatus; boundaries use this value
	// when they need an error.
	ErrNotAuthenticated = errors.New("not authenticated")
)
