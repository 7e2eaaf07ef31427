package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/achrafato/MarkDown-App/internal/application"
	"github.com/achrafato/MarkDown-App/internal/domain/entity"
	repo "github.com/achrafato/MarkDown-App/internal/domain/repository"
	pginfra "github.com/achrafato/MarkDown-App/internal/infrastructure/postgres"
	"github.com/achrafato/MarkDown-App/pkg/helpers"
)

// Seeder writes a Fixture through the same services the API uses, so
// categories get normalized and content trimmed exactly as in production.
type Seeder struct {
	Users    repo.UserRepository
	Posts    *application.PostService
	Comments *application.CommentService
	Out      io.Writer
}

// SeedResult counts what was inserted. Users that already exist are skipped
// together with their posts so reruns do not duplicate content.
type SeedResult struct {
	Users, SkippedUsers, Posts, Comments int
}

func (s *Seeder) Seed(ctx context.Context, f *Fixture) (SeedResult, error) {
	var res SeedResult
	userIDs := map[string]int64{}
	postIDs := map[string]int64{}

	for _, fu := range f.Users {
		email := strings.ToLower(strings.TrimSpace(fu.Email))
		existing, err := s.Users.GetByEmail(ctx, email)
		if err != nil {
			return res, err
		}
		if existing != nil {
			userIDs[email] = existing.ID
			res.SkippedUsers++
			fmt.Fprintf(s.Out, "skip user %s (exists, id=%d)\n", email, existing.ID)
			continue
		}

		hash, err := helpers.HashPassword(fu.Password)
		if err != nil {
			return res, err
		}
		u, err := s.Users.Create(ctx, email, hash, fu.Name)
		if err != nil {
			return res, fmt.Errorf("create user %s: %w", email, err)
		}
		if patch := profilePatch(fu); !patch.Empty() {
			if _, err := s.Users.Update(ctx, u.ID, patch); err != nil {
				return res, fmt.Errorf("update profile %s: %w", email, err)
			}
		}
		userIDs[email] = u.ID
		res.Users++
		fmt.Fprintf(s.Out, "user %s id=%d\n", email, u.ID)

		for _, fp := range fu.Posts {
			p, err := s.Posts.Create(ctx, u.ID, application.CreatePostInput{
				Title:     fp.Title,
				Content:   fp.Content,
				Excerpt:   fp.Excerpt,
				Category:  fp.Category,
				Published: fp.Published,
			})
			if err != nil {
				return res, fmt.Errorf("create post %q: %w", fp.Title, err)
			}
			postIDs[p.Title] = p.ID
			res.Posts++
		}
	}

	for _, fc := range f.Comments {
		postID, ok := postIDs[strings.TrimSpace(fc.Post)]
		if !ok {
			fmt.Fprintf(s.Out, "skip comment on %q (post not seeded in this run)\n", fc.Post)
			continue
		}
		userID, ok := userIDs[strings.ToLower(strings.TrimSpace(fc.Author))]
		if !ok {
			return res, fmt.Errorf("comment on %q: unknown author %s", fc.Post, fc.Author)
		}
		if _, err := s.Comments.Create(ctx, userID, postID, fc.Content); err != nil {
			return res, fmt.Errorf("comment on %q: %w", fc.Post, err)
		}
		res.Comments++
	}
	return res, nil
}

func profilePatch(fu FixtureUser) entity.UserPatch {
	var p entity.UserPatch
	if fu.Bio != "" {
		bio := fu.Bio
		p.Bio = &bio
	}
	if fu.Avatar != "" {
		avatar := fu.Avatar
		p.Avatar = &avatar
	}
	return p
}

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users, posts and comments",
		Long: `Seed the database from a YAML fixture.

Without --file the SEED_FILE setting is used, and without that the
built-in demo data. Existing users are left untouched.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = opts.Cfg.SeedFile
			}
			fixture, err := LoadFixture(file)
			if err != nil {
				return err
			}
			pool, err := opts.openPool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			posts := pginfra.NewPostRepository(pool)
			s := &Seeder{
				Users:    pginfra.NewUserRepository(pool),
				Posts:    application.NewPostService(posts, opts.Logger, opts.Cfg.DefaultPageSize, opts.Cfg.MaxPageSize),
				Comments: application.NewCommentService(pginfra.NewCommentRepository(pool), posts, nil, opts.Cfg, opts.Logger),
				Out:      cmd.OutOrStdout(),
			}
			res, err := s.Seed(cmd.Context(), fixture)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded users=%d (skipped %d) posts=%d comments=%d\n",
				res.Users, res.SkippedUsers, res.Posts, res.Comments)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture to load")
	return cmd
}
