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

type CommentRepository struct {
	pool *pgxpool.Pool
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]entity.CommentWithAuthor, error) {
	rows, err := r.pool.Query(ctx, commentSelect+`
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments for post %d: %w", postID, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.CommentWithAuthor, error) {
		return scanComment(row)
	})
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	c := &entity.Comment{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, post_id, user_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`, id).Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, postID, userID int64, content string) (*entity.CommentWithAuthor, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`, postID, userID, content).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	c, err := scanComment(r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.Inconsistent("comment", id)
		}
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}
	return &c, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete comment %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
