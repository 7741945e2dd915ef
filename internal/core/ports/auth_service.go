package ports

import (
	"context"

	"github.com/webware/award-board/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials and establishes a session, returning the
	// opaque session token alongside the identity.
	Login(ctx context.Context, username, password string) (string, *domain.Identity, error)
	Restore(ctx context.Context, token string) (*domain.Identity, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
}
