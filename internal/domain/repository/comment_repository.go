package repository

import (
	"context"

	"github.com/achrafato/MarkDown-App/internal/domain/entity"
)

// CommentRepository reads and writes comments.
type CommentRepository interface {
	// ListByPost returns comments oldest first.
	ListByPost(ctx context.Context, postID int64) ([]entity.CommentWithAuthor, error)
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	Create(ctx context.Context, postID, userID int64, content string) (*entity.CommentWithAuthor, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
