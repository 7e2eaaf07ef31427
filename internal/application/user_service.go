package application

import (
	"context"
	"strings"

	"github.com/achrafato/MarkDown-App/internal/domain/entity"
	repo "github.com/achrafato/MarkDown-App/internal/domain/repository"
)

type UserService struct {
	Users repo.UserRepository
	Posts repo.PostRepository
}

func NewUserService(users repo.UserRepository, posts repo.PostRepository) *UserService {
	return &UserService{Users: users, Posts: posts}
}

// AuthorPage is a public author profile with their published posts.
type AuthorPage struct {
	Author entity.User
	Posts  []entity.PostWithAuthor
}

// UpdateProfile applies a partial update. At least one field must be present.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, patch entity.UserPatch) (*entity.User, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.Empty() {
		return nil, ErrNothingToUpdate
	}
	u, err := s.Users.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) Author(ctx context.Context, userID int64) (*AuthorPage, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	posts, err := s.Posts.ListPublishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &AuthorPage{Author: *u, Posts: posts}, nil
}

// Authors ranks every user by published post count.
func (s *UserService) Authors(ctx context.Context) ([]entity.AuthorStats, error) {
	return s.Users.ListWithPostCount(ctx)
}
