package ports

import (
	"context"

	"github.com/webware/award-board/internal/core/domain"
)

type CommentService interface {
	Add(ctx context.Context, username, message string) (*domain.Comment, error)
	// Remove deletes the comment only when requester matches its author:
	// domain.ErrForbidden otherwise, domain.ErrCommentNotFound for an
	// unknown id.
	Remove(ctx context.Context, id, requester string) error
	List(ctx context.Context) ([]domain.Comment, error)
}
