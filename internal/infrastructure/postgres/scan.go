package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/achrafato/MarkDown-App/internal/domain/entity"
)

const uniqueViolation = "23505"

const postSelect = `
	SELECT p.id, p.user_id, p.title, p.content, p.excerpt, p.category, p.published,
	       p.created_at, p.updated_at,
	       u.id, u.email, u.name, u.bio, u.avatar
	FROM posts p
	JOIN users u ON u.id = p.user_id`

const newestFirst = ` ORDER BY p.created_at DESC, p.id DESC`

const commentSelect = `
	SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, c.updated_at,
	       u.id, u.email, u.name, u.bio, u.avatar
	FROM comments c
	JOIN users u ON u.id = c.user_id`

func scanPost(row pgx.Row) (entity.PostWithAuthor, error) {
	var p entity.PostWithAuthor
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Excerpt, &p.Category, &p.Published,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.Email, &p.Author.Name, &p.Author.Bio, &p.Author.Avatar)
	return p, err
}

func collectPosts(rows pgx.Rows) ([]entity.PostWithAuthor, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.PostWithAuthor, error) {
		return scanPost(row)
	})
}

func scanComment(row pgx.Row) (entity.CommentWithAuthor, error) {
	var c entity.CommentWithAuthor
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.ID, &c.Author.Email, &c.Author.Name, &c.Author.Bio, &c.Author.Avatar)
	return c, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// updateBuilder collects "col = $n" assignments for sparse updates.
type updateBuilder struct {
	sets []string
	args []any
}

func (b *updateBuilder) set(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// build always stamps updated_at in the same statement.
func (b *updateBuilder) build(table string, id int64) (string, []any) {
	sets := append(b.sets, "updated_at = now()")
	args := append(b.args, id)
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args)), args
}

// likePattern turns free text into an ILIKE substring pattern that matches it literally.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
