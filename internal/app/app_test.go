package app_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-auth/internal/app"
	"session-auth/internal/config"
)

func newApp(t *testing.T) *app.App {
	t.Helper()

	cfg, err := config.Parse(env.Options{Environment: map[string]string{
		"CREDENTIAL_BACKEND":       "memory",
		"SESSION_BACKEND":          "memory",
		"SESSION_SECRET":           strings.Repeat("s", 32),
		"SESSION_CLEANUP_INTERVAL": "0s",
		"BCRYPT_COST":              "4",
		"COOKIE_NAME":              "nodejs-intern",
	}})
	require.NoError(t, err)

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	return a
}

func send(h http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestApp_EndToEnd(t *testing.T) {
	h := newApp(t).Handler()

	rec := send(h, http.MethodPost, "/register", `{"email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = send(h, http.MethodPost, "/login", `{"email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "nodejs-intern", cookies[0].Name)
	assert.Equal(t, 60, cookies[0].MaxAge)

	rec = send(h, http.MethodGet, "/isLoggedIn", "", cookies[0])
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = send(h, http.MethodGet, "/api/me", "", cookies[0])
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user_id")

	rec = send(h, http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApp_Health(t *testing.T) {
	h := newApp(t).Handler()

	rec := send(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
