package application

import (
	"context"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/internal/domain/entity"
	repo "github.com/achrafato/MarkDown-App/internal/domain/repository"
	"github.com/achrafato/MarkDown-App/pkg/helpers"
)

// PostService applies ownership and visibility rules on top of the post repository.
// Ownership is always checked before a mutating query runs.
type PostService struct {
	Posts           repo.PostRepository
	Logger          *logrus.Logger
	DefaultPageSize int
	MaxPageSize     int
}

func NewPostService(posts repo.PostRepository, logger *logrus.Logger, defaultPageSize, maxPageSize int) *PostService {
	return &PostService{Posts: posts, Logger: logger, DefaultPageSize: defaultPageSize, MaxPageSize: maxPageSize}
}

type CreatePostInput struct {
	Title     string
	Content   string
	Excerpt   string
	Category  string
	Published bool
}

// Page is one page of the published feed.
type Page struct {
	Posts   []entity.PostWithAuthor
	Page    int
	Limit   int
	HasMore bool
}

func (s *PostService) Create(ctx context.Context, userID int64, in CreatePostInput) (*entity.PostWithAuthor, error) {
	p, err := s.Posts.Create(ctx, entity.NewPost{
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Excerpt:   strings.TrimSpace(in.Excerpt),
		Category:  helpers.NormalizeCategory(in.Category),
		Published: in.Published,
	})
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "post_id": p.ID, "published": p.Published}).Info("post created")
	return p, nil
}

// Get returns a post. Drafts are only visible to their owner; viewerID 0 is anonymous.
func (s *PostService) Get(ctx context.Context, postID, viewerID int64) (*entity.PostWithAuthor, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil || !visible(&p.Post, viewerID) {
		return nil, ErrPostNotFound
	}
	return p, nil
}

func visible(p *entity.Post, viewerID int64) bool {
	return p.Published || (viewerID != 0 && p.OwnedBy(viewerID))
}

// Clamp bounds 1-based page and limit query values.
func (s *PostService) Clamp(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.DefaultPageSize
	}
	if limit > s.MaxPageSize {
		limit = s.MaxPageSize
	}
	// keeps (page-1)*limit from overflowing into a negative offset
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return page, limit
}

func (s *PostService) ListPublished(ctx context.Context, page, limit int) (*Page, error) {
	page, limit = s.Clamp(page, limit)
	// one extra row tells us whether another page exists
	posts, err := s.Posts.ListPublished(ctx, limit+1, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	hasMore := len(posts) > limit
	if hasMore {
		posts = posts[:limit]
	}
	return &Page{Posts: posts, Page: page, Limit: limit, HasMore: hasMore}, nil
}

// ListMine returns every post of the user, drafts included.
func (s *PostService) ListMine(ctx context.Context, userID int64) ([]entity.PostWithAuthor, error) {
	return s.Posts.ListByUser(ctx, userID)
}

func (s *PostService) ListByCategory(ctx context.Context, category string) ([]entity.PostWithAuthor, error) {
	category = helpers.NormalizeCategory(category)
	if category == "" {
		return []entity.PostWithAuthor{}, nil
	}
	return s.Posts.ListByCategory(ctx, category)
}

func (s *PostService) Categories(ctx context.Context) ([]entity.CategoryCount, error) {
	return s.Posts.CategoryCounts(ctx)
}

// Search matches q literally; a blank query matches nothing.
func (s *PostService) Search(ctx context.Context, q string) ([]entity.PostWithAuthor, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.PostWithAuthor{}, nil
	}
	return s.Posts.Search(ctx, q)
}

func (s *PostService) Update(ctx context.Context, userID, postID int64, patch entity.PostPatch) (*entity.PostWithAuthor, error) {
	if patch.Empty() {
		return nil, ErrNothingToUpdate
	}
	if _, err := s.owned(ctx, userID, postID); err != nil {
		return nil, err
	}

	if patch.Category != nil {
		c := helpers.NormalizeCategory(*patch.Category)
		patch.Category = &c
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		patch.Title = &t
	}

	p, err := s.Posts.Update(ctx, postID, patch)
	if err != nil {
		return nil, err
	}
	if p == nil {
		// deleted between the ownership check and the update
		return nil, ErrPostNotFound
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, userID, postID int64) error {
	if _, err := s.owned(ctx, userID, postID); err != nil {
		return err
	}
	removed, err := s.Posts.Delete(ctx, postID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrPostNotFound
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "post_id": postID}).Info("post deleted")
	return nil
}

// owned loads the post and verifies userID owns it.
func (s *PostService) owned(ctx context.Context, userID, postID int64) (*entity.PostWithAuthor, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	if !p.OwnedBy(userID) {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "post_id": postID}).Warn("post modification by non-owner rejected")
		return nil, ErrForbidden
	}
	return p, nil
}
