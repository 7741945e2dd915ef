package domain

import "time"

// User models a registered account. Awards holds the distinct HTTP status
// codes the user has triggered; it behaves as a set (grants are idempotent).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Awards       []int     `json:"awards"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasAward reports whether the user already earned the given status code.
func (u *User) HasAward(code int) bool {
	for _, c := range u.Awards {
		if c == code {
			return true
		}
	}
	return false
}

// Identity is the authenticated actor restored from a session.
type Identity struct {
	Username string `json:"username"`
	Awards   []int  `json:"awards"`
}
