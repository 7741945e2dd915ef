package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/webware/award-board/internal/core/domain"
	"github.com/webware/award-board/internal/core/ports"
)

// AuthService implements signup, login, session restoration, and password
// changes over a user repository and a session store.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrBadCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Awards:       []int{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and establishes a session. The returned
// token is an opaque UUID; the caller decides how to hand it to the client.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Identity, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrBadCredential
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrBadCredential
	}

	token := uuid.NewString()
	if err := s.sessions.Put(ctx, token, user.Username); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	s.log.Info().Str("username", username).Msg("session established")
	return token, &domain.Identity{Username: user.Username, Awards: user.Awards}, nil
}

// Restore resolves a session token back into an identity. A token whose
// session lapsed, or whose user vanished underneath it, is treated as expired.
func (s *AuthService) Restore(ctx context.Context, token string) (*domain.Identity, error) {
	username, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}

	return &domain.Identity{Username: user.Username, Awards: user.Awards}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ChangePassword swaps the stored hash after verifying the old password.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrBadCredential
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrBadCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, username, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Msg("password changed")
	return nil
}
