package repository

import (
	"context"

	"github.com/achrafato/MarkDown-App/internal/domain/entity"
)

// PostRepository reads and writes posts. Every list is ordered newest first
// unless stated otherwise.
type PostRepository interface {
	Create(ctx context.Context, in entity.NewPost) (*entity.PostWithAuthor, error)
	GetByID(ctx context.Context, id int64) (*entity.PostWithAuthor, error)
	ListPublished(ctx context.Context, limit, offset int) ([]entity.PostWithAuthor, error)
	// ListByUser includes drafts.
	ListByUser(ctx context.Context, userID int64) ([]entity.PostWithAuthor, error)
	ListPublishedByUser(ctx context.Context, userID int64) ([]entity.PostWithAuthor, error)
	// ListByCategory matches the category case-insensitively, published posts only.
	ListByCategory(ctx context.Context, category string) ([]entity.PostWithAuthor, error)
	// Search is a case-insensitive substring match over published posts.
	Search(ctx context.Context, query string) ([]entity.PostWithAuthor, error)
	// CategoryCounts counts published posts per category, alphabetically.
	CategoryCounts(ctx context.Context) ([]entity.CategoryCount, error)
	Update(ctx context.Context, id int64, patch entity.PostPatch) (*entity.PostWithAuthor, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
