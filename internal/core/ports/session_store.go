package ports

import "context"

// SessionStore maps opaque session tokens to usernames. Implementations
// apply an idle TTL: Get refreshes it, Delete invalidates immediately, and
// an absent or lapsed token surfaces as domain.ErrSessionExpired.
type SessionStore interface {
	Put(ctx context.Context, token, username string) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
