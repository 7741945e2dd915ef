package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/webware/award-board/internal/core/ports"
)

// AwardService records the status codes users trigger. Grants use set
// semantics in the repository, so repeats are harmless.
type AwardService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAwardService(users ports.UserRepository, log zerolog.Logger) *AwardService {
	return &AwardService{users: users, log: log}
}

func (s *AwardService) Grant(ctx context.Context, username string, code int) error {
	if err := s.users.AddAward(ctx, username, code); err != nil {
		return err
	}

	s.log.Debug().Str("username", username).Int("code", code).Msg("award recorded")
	return nil
}
