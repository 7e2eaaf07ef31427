package repository

import (
	"context"

	"github.com/achrafato/MarkDown-App/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Lookups return a nil record and a nil error when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, name string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByEmail is the only accessor that returns the password hash.
	GetByEmail(ctx context.Context, email string) (*entity.UserCredentials, error)
	Update(ctx context.Context, id int64, patch entity.UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// ListWithPostCount ranks users by published post count, highest first.
	ListWithPostCount(ctx context.Context) ([]entity.AuthorStats, error)
}
