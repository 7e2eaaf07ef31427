package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/achrafato/MarkDown-App/internal/domain/entity"
	"github.com/achrafato/MarkDown-App/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

var _ repository.PostRepository = (*PostRepository)(nil)

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, in entity.NewPost) (*entity.PostWithAuthor, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO posts (user_id, title, content, excerpt, category, published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, in.UserID, in.Title, in.Content, in.Excerpt, in.Category, in.Published).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, repository.Inconsistent("post", id)
	}
	return p, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.PostWithAuthor, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &p, nil
}

func (r *PostRepository) ListPublished(ctx context.Context, limit, offset int) ([]entity.PostWithAuthor, error) {
	return r.list(ctx, postSelect+` WHERE p.published = TRUE`+newestFirst+` LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int64) ([]entity.PostWithAuthor, error) {
	return r.list(ctx, postSelect+` WHERE p.user_id = $1`+newestFirst, userID)
}

func (r *PostRepository) ListPublishedByUser(ctx context.Context, userID int64) ([]entity.PostWithAuthor, error) {
	return r.list(ctx, postSelect+` WHERE p.user_id = $1 AND p.published = TRUE`+newestFirst, userID)
}

func (r *PostRepository) ListByCategory(ctx context.Context, category string) ([]entity.PostWithAuthor, error) {
	return r.list(ctx, postSelect+` WHERE LOWER(p.category) = LOWER($1) AND p.published = TRUE`+newestFirst, category)
}

func (r *PostRepository) Search(ctx context.Context, query string) ([]entity.PostWithAuthor, error) {
	return r.list(ctx, postSelect+`
		WHERE p.published = TRUE
		  AND (p.title ILIKE $1 OR p.content ILIKE $1 OR p.excerpt ILIKE $1 OR p.category ILIKE $1)`+newestFirst,
		likePattern(query))
}

func (r *PostRepository) CategoryCounts(ctx context.Context) ([]entity.CategoryCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, COUNT(*)
		FROM posts
		WHERE published = TRUE
		GROUP BY category
		ORDER BY category ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.CategoryCount, error) {
		var c entity.CategoryCount
		err := row.Scan(&c.Category, &c.Count)
		return c, err
	})
}

// Update writes only the fields present in patch and re-reads the joined row.
func (r *PostRepository) Update(ctx context.Context, id int64, patch entity.PostPatch) (*entity.PostWithAuthor, error) {
	var b updateBuilder
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Content != nil {
		b.set("content", *patch.Content)
	}
	if patch.Excerpt != nil {
		b.set("excerpt", *patch.Excerpt)
	}
	if patch.Category != nil {
		b.set("category", *patch.Category)
	}
	if patch.Published != nil {
		b.set("published", *patch.Published)
	}
	query, args := b.build("posts", id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, repository.Inconsistent("post", id)
	}
	return p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]entity.PostWithAuthor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return collectPosts(rows)
}
