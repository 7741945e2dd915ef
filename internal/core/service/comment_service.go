package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/webware/award-board/internal/core/domain"
	"github.com/webware/award-board/internal/core/ports"
)

// CommentService implements the shared comment board.
type CommentService struct {
	comments ports.CommentRepository
	log      zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, log: log}
}

// Add persists a new comment for username. Messages with any rune above
// U+00FF are declined with domain.ErrMessageRejected and nothing is stored.
func (s *CommentService) Add(ctx context.Context, username, message string) (*domain.Comment, error) {
	if !domain.MessageAllowed(message) {
		return nil, domain.ErrMessageRejected
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		Username:  username,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Debug().Str("username", username).Str("comment_id", comment.ID).Msg("comment added")
	return comment, nil
}

// Remove deletes a comment, but only for its author.
func (s *CommentService) Remove(ctx context.Context, id, requester string) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.Username != requester {
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Debug().Str("username", requester).Str("comment_id", id).Msg("comment removed")
	return nil
}

func (s *CommentService) List(ctx context.Context) ([]domain.Comment, error) {
	return s.comments.ListByRecency(ctx)
}
