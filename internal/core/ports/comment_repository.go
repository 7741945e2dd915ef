package ports

import (
	"context"

	"github.com/webware/award-board/internal/core/domain"
)

// CommentRepository defines the persistence interface for board comments.
type CommentRepository interface {
	Insert(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	// ListByRecency returns all comments ordered newest first.
	ListByRecency(ctx context.Context) ([]domain.Comment, error)
}
