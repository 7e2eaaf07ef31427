package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/config"
	"github.com/achrafato/MarkDown-App/internal/domain/entity"
	repo "github.com/achrafato/MarkDown-App/internal/domain/repository"
	"github.com/achrafato/MarkDown-App/pkg/mailer"
	mailtpl "github.com/achrafato/MarkDown-App/pkg/mailer/templates"
)

type CommentService struct {
	Comments repo.CommentRepository
	Posts    repo.PostRepository
	Jobs     JobPublisher
	Cfg      *config.Config
	Logger   *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, posts repo.PostRepository, jobs JobPublisher, cfg *config.Config, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Posts: posts, Jobs: jobs, Cfg: cfg, Logger: logger}
}

// List returns the comments of a post the viewer can see, oldest first.
func (s *CommentService) List(ctx context.Context, postID, viewerID int64) ([]entity.CommentWithAuthor, error) {
	if _, err := s.visiblePost(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	return s.Comments.ListByPost(ctx, postID)
}

// Create adds a comment and notifies the post owner. Notification failures
// are logged; the comment stands.
func (s *CommentService) Create(ctx context.Context, userID, postID int64, content string) (*entity.CommentWithAuthor, error) {
	post, err := s.visiblePost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	c, err := s.Comments.Create(ctx, postID, userID, strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(userID) {
		s.notifyOwner(ctx, post, c)
	}
	return c, nil
}

// Delete removes a comment. Only its author may do so.
func (s *CommentService) Delete(ctx context.Context, userID, commentID int64) error {
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCommentNotFound
	}
	if !c.WrittenBy(userID) {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "comment_id": commentID}).Warn("comment deletion by non-author rejected")
		return ErrForbidden
	}
	removed, err := s.Comments.Delete(ctx, commentID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrCommentNotFound
	}
	return nil
}

func (s *CommentService) visiblePost(ctx context.Context, postID, viewerID int64) (*entity.PostWithAuthor, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil || !visible(&p.Post, viewerID) {
		return nil, ErrPostNotFound
	}
	return p, nil
}

func (s *CommentService) notifyOwner(ctx context.Context, post *entity.PostWithAuthor, c *entity.CommentWithAuthor) {
	if s.Jobs == nil || post.Author.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       post.Author.Email,
		Template: mailtpl.NewComment,
		Data: mailtpl.NewCommentData(s.Cfg, post.Author.Name, post.Author.Email,
			mailtpl.WithPost(post.Title, s.Cfg.PostURL(post.ID)),
			mailtpl.WithComment(c.Author.Name, c.Content),
			mailtpl.WithTime(c.CreatedAt),
		),
	}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"post_id": post.ID, "comment_id": c.ID}).Warn("enqueue comment notification failed")
	}
}
