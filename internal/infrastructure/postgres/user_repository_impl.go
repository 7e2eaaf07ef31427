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

type UserRepository struct {
	pool *pgxpool.Pool
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash, name string) (*entity.User, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password, name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, passwordHash, name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, repository.Inconsistent("user", id)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u := &entity.User{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, bio, avatar, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Name, &u.Bio, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.UserCredentials, error) {
	c := &entity.UserCredentials{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, bio, avatar, created_at, updated_at, password
		FROM users
		WHERE email = $1
	`, email).Scan(&c.ID, &c.Email, &c.Name, &c.Bio, &c.Avatar, &c.CreatedAt, &c.UpdatedAt, &c.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return c, nil
}

// Update writes only the fields present in patch. An empty patch still stamps updated_at.
func (r *UserRepository) Update(ctx context.Context, id int64, patch entity.UserPatch) (*entity.User, error) {
	var b updateBuilder
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Bio != nil {
		b.set("bio", *patch.Bio)
	}
	if patch.Avatar != nil {
		b.set("avatar", *patch.Avatar)
	}
	query, args := b.build("users", id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, repository.Inconsistent("user", id)
	}
	return u, nil
}

// Delete removes the user; posts and comments go with it through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) ListWithPostCount(ctx context.Context) ([]entity.AuthorStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, u.name, u.bio, u.avatar, u.created_at, u.updated_at,
		       COUNT(p.id) AS post_count
		FROM users u
		LEFT JOIN posts p ON p.user_id = u.id AND p.published = TRUE
		GROUP BY u.id
		ORDER BY post_count DESC, u.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users with post count: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.AuthorStats, error) {
		var s entity.AuthorStats
		err := row.Scan(&s.ID, &s.Email, &s.Name, &s.Bio, &s.Avatar, &s.CreatedAt, &s.UpdatedAt, &s.PostCount)
		return s, err
	})
}
