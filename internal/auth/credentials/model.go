package credentials

import (
	"strings"
	"time"
)

type User struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

// UserSummary is the only user view that leaves the service; it never
// carries the password hash.
type UserSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail is the single lookup policy for emails: trimmed and
// lower-cased, so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
