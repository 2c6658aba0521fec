package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const DefaultCookieName = "sid"

var ErrEmptySecret = errors.New("session: cookie secret is empty")

// CookieOptions defines how session cookies are issued. HttpOnly and Secure
// are plain settings so deployments can turn them off for local HTTP, but
// DefaultCookieOptions enables both.
type CookieOptions struct {
	Name     string
	Path     string
	Domain   string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
	// MaxAge must equal the session store TTL.
	MaxAge   time.Duration
}

func DefaultCookieOptions(ttl time.Duration) CookieOptions {
	return CookieOptions{
		Name:     DefaultCookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   ttl,
	}
}

// normalize fills in fields that have a single correct value
func (o CookieOptions) normalize() CookieOptions {
	if o.Name == "" {
		o.Name = DefaultCookieName
	}
	if o.Path == "" {
		o.Path = "/"
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// Cookie carries the session ID to and from the client. The value is signed
// with the session secret; the ID itself stays an opaque random string.
type Cookie struct {
	opts  CookieOptions
	codec *securecookie.SecureCookie
}

func NewCookie(secret string, opts CookieOptions) (*Cookie, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	opts = opts.normalize()

	codec := securecookie.New([]byte(secret), nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	if maxAge := int(opts.MaxAge.Seconds()); maxAge > 0 {
		codec.MaxAge(maxAge)
	}

	return &Cookie{opts: opts, codec: codec}, nil
}

func (c *Cookie) Name() string {
	return c.opts.Name
}

// Write issues the session cookie to the client.
func (c *Cookie) Write(w http.ResponseWriter, sessionID string, expiresAt time.Time) error {
	value, err := c.codec.Encode(c.opts.Name, sessionID)
	if err != nil {
		return fmt.Errorf("session: encode cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.opts.Name,
		Value:    value,
		Path:     c.opts.Path,
		Domain:   c.opts.Domain,
		Expires:  expiresAt,
		MaxAge:   int(c.opts.MaxAge.Seconds()),
		HttpOnly: c.opts.HttpOnly,
		Secure:   c.opts.Secure,
		SameSite: c.opts.SameSite,
	})

	return nil
}

// Read returns the session ID carried by the request. A missing, tampered or
// stale cookie reads as absent.
func (c *Cookie) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.opts.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	var sessionID string
	if err := c.codec.Decode(c.opts.Name, cookie.Value, &sessionID); err != nil {
		return "", false
	}

	return sessionID, sessionID != ""
}
