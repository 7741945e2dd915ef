package ports

import (
	"context"

	"github.com/webware/award-board/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	// AddAward inserts code into the user's award set. Adding a code the
	// user already holds is a no-op.
	AddAward(ctx context.Context, username string, code int) error
}
