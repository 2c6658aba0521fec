package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"session-auth/internal/auth"
	"session-auth/internal/logger"
	"session-auth/internal/session"
)

// unexported, collision-proof context key
type userIDContextKeyType struct{}

var userIDKey = userIDContextKeyType{}

// UserIDFromContext extracts the authenticated user ID from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// SessionChecker is the part of auth.Service the middleware depends on.
type SessionChecker interface {
	CheckSession(ctx context.Context, sessionID string) (auth.SessionStatus, error)
}

type AuthMiddleware struct {
	checker SessionChecker
	cookie  *session.Cookie
}

func NewAuthMiddleware(checker SessionChecker, cookie *session.Cookie) *AuthMiddleware {
	return &AuthMiddleware{checker: checker, cookie: cookie}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		sessionID, ok := a.cookie.Read(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, "Not authenticated!")
			return
		}

		// 2. Check session; the store enforces expiry
		status, err := a.checker.CheckSession(r.Context(), sessionID)
		if err != nil {
			logger.Error("session check failed", map[string]any{
				"path":  r.URL.Path,
				"error": err.Error(),
			})
			writeJSON(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
			return
		}
		if !status.Authenticated {
			writeJSON(w, http.StatusUnauthorized, "Not authenticated!")
			return
		}

		// 3. Attach user_id to context
		ctx := context.WithValue(r.Context(), userIDKey, status.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": message,
		"status":  false,
	})
}
