package postgres_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achrafato/MarkDown-App/internal/domain/entity"
	"github.com/achrafato/MarkDown-App/internal/domain/repository"
	"github.com/achrafato/MarkDown-App/internal/infrastructure/postgres"
	"github.com/achrafato/MarkDown-App/internal/testutil"
	"github.com/achrafato/MarkDown-App/pkg/helpers"
)

type repos struct {
	pool     *pgxpool.Pool
	users    *postgres.UserRepository
	posts    *postgres.PostRepository
	comments *postgres.CommentRepository
}

func setup(t *testing.T) repos {
	t.Helper()
	pool := testutil.SetupTestPool(t)
	return repos{
		pool:     pool,
		users:    postgres.NewUserRepository(pool),
		posts:    postgres.NewPostRepository(pool),
		comments: postgres.NewCommentRepository(pool),
	}
}

func (r repos) user(t *testing.T, email string) *entity.User {
	t.Helper()
	u, err := r.users.Create(context.Background(), email, "hash", "User "+email)
	require.NoError(t, err)
	return u
}

func (r repos) post(t *testing.T, userID int64, title, category string, published bool) *entity.PostWithAuthor {
	t.Helper()
	p, err := r.posts.Create(context.Background(), entity.NewPost{
		UserID: userID, Title: title, Content: "content of " + title,
		Excerpt: "excerpt", Category: category, Published: published,
	})
	require.NoError(t, err)
	return p
}

func ids(posts []entity.PostWithAuthor) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestUserRepository(t *testing.T) {
	r := setup(t)
	ctx := context.Background()

	t.Run("create then email lookup verifies hash", func(t *testing.T) {
		hash, err := helpers.HashPassword("s3cret-pw")
		require.NoError(t, err)

		u, err := r.users.Create(ctx, "alice@example.com", hash, "Alice")
		require.NoError(t, err)
		assert.Positive(t, u.ID)
		assert.Equal(t, entity.DefaultAvatar, u.Avatar)
		assert.Nil(t, u.Bio)
		assert.False(t, u.CreatedAt.IsZero())

		creds, err := r.users.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.NotEqual(t, "s3cret-pw", creds.PasswordHash)
		assert.True(t, helpers.CompareHashAndPassword(creds.PasswordHash, "s3cret-pw"))
		assert.Equal(t, u.ID, creds.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := r.users.Create(ctx, "alice@example.com", "x", "Other")
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("absent lookups return nil without error", func(t *testing.T) {
		u, err := r.users.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, u)

		c, err := r.users.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("partial update", func(t *testing.T) {
		u := r.user(t, "bob@example.com")
		bio := "writes about Go"
		got, err := r.users.Update(ctx, u.ID, entity.UserPatch{Bio: &bio})
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.Bio)
		assert.Equal(t, bio, *got.Bio)
		assert.Equal(t, u.Name, got.Name)
		assert.Equal(t, u.Avatar, got.Avatar)
		assert.False(t, got.UpdatedAt.Before(u.UpdatedAt))

		missing, err := r.users.Update(ctx, 999999, entity.UserPatch{Bio: &bio})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestPostRepository_PublishedPagination(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	u := r.user(t, "author@example.com")

	for i := range 12 {
		r.post(t, u.ID, fmt.Sprintf("published %d", i), "Go", true)
		r.post(t, u.ID, fmt.Sprintf("draft %d", i), "Go", false)
	}

	first, err := r.posts.ListPublished(ctx, 10, 0)
	require.NoError(t, err)
	second, err := r.posts.ListPublished(ctx, 10, 10)
	require.NoError(t, err)
	assert.Len(t, first, 10)
	assert.Len(t, second, 2)

	seen := map[int64]bool{}
	all := append(append([]entity.PostWithAuthor{}, first...), second...)
	for i, p := range all {
		assert.True(t, p.Published, "draft %d leaked into published list", p.ID)
		assert.False(t, seen[p.ID], "post %d appears on both pages", p.ID)
		seen[p.ID] = true
		if i > 0 {
			prev := all[i-1]
			assert.False(t, p.CreatedAt.After(prev.CreatedAt))
			assert.Less(t, p.ID, prev.ID)
		}
		assert.Equal(t, u.Email, p.Author.Email)
	}

	beyond, err := r.posts.ListPublished(ctx, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.NotNil(t, beyond)
}

func TestPostRepository_Update(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	u := r.user(t, "author@example.com")
	p := r.post(t, u.ID, "Original", "Technology", false)

	_, err := r.pool.Exec(ctx, `UPDATE posts SET updated_at = updated_at - interval '1 hour' WHERE id = $1`, p.ID)
	require.NoError(t, err)
	before, err := r.posts.GetByID(ctx, p.ID)
	require.NoError(t, err)

	title := "X"
	got, err := r.posts.Update(ctx, p.ID, entity.PostPatch{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "X", got.Title)
	assert.Equal(t, before.Content, got.Content)
	assert.Equal(t, before.Excerpt, got.Excerpt)
	assert.Equal(t, before.Category, got.Category)
	assert.Equal(t, before.Published, got.Published)
	assert.True(t, got.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(t, u.ID, got.Author.ID)

	publish := true
	got, err = r.posts.Update(ctx, p.ID, entity.PostPatch{Published: &publish})
	require.NoError(t, err)
	assert.True(t, got.Published)
	assert.Equal(t, "X", got.Title)

	missing, err := r.posts.Update(ctx, 999999, entity.PostPatch{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostRepository_SearchAndCategories(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	u := r.user(t, "author@example.com")

	tech := r.post(t, u.ID, "Goroutines explained", "Technology", true)
	r.post(t, u.ID, "Secret zebra draft", "Technology", false)
	life := r.post(t, u.ID, "Weekend hike", "Life", true)
	pct := r.post(t, u.ID, "100% coverage", "Testing", true)

	t.Run("draft-only substring", func(t *testing.T) {
		got, err := r.posts.Search(ctx, "zebra")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("case-insensitive across fields", func(t *testing.T) {
		got, err := r.posts.Search(ctx, "GOROUTINES")
		require.NoError(t, err)
		assert.Equal(t, []int64{tech.ID}, ids(got))

		got, err = r.posts.Search(ctx, "life")
		require.NoError(t, err)
		assert.Equal(t, []int64{life.ID}, ids(got))
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		got, err := r.posts.Search(ctx, "%")
		require.NoError(t, err)
		assert.Equal(t, []int64{pct.ID}, ids(got))

		got, err = r.posts.Search(ctx, "_")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("category match ignores case", func(t *testing.T) {
		got, err := r.posts.ListByCategory(ctx, "technology")
		require.NoError(t, err)
		assert.Equal(t, []int64{tech.ID}, ids(got))
	})

	t.Run("category counts are alphabetical and published only", func(t *testing.T) {
		got, err := r.posts.CategoryCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []entity.CategoryCount{
			{Category: "Life", Count: 1},
			{Category: "Technology", Count: 1},
			{Category: "Testing", Count: 1},
		}, got)
	})

	t.Run("user listings", func(t *testing.T) {
		mine, err := r.posts.ListByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 4)

		public, err := r.posts.ListPublishedByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{pct.ID, life.ID, tech.ID}, ids(public))
	})
}

func TestUserRepository_ListWithPostCount(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	quiet := r.user(t, "quiet@example.com")
	busy := r.user(t, "busy@example.com")
	r.post(t, busy.ID, "one", "Go", true)
	r.post(t, busy.ID, "two", "Go", true)
	r.post(t, quiet.ID, "draft", "Go", false)

	got, err := r.users.ListWithPostCount(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, busy.ID, got[0].ID)
	assert.EqualValues(t, 2, got[0].PostCount)
	assert.Equal(t, quiet.ID, got[1].ID)
	assert.EqualValues(t, 0, got[1].PostCount)
}

func TestCommentRepository(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	owner := r.user(t, "owner@example.com")
	reader := r.user(t, "reader@example.com")
	p := r.post(t, owner.ID, "Post", "Go", true)

	first, err := r.comments.Create(ctx, p.ID, reader.ID, "first!")
	require.NoError(t, err)
	assert.Equal(t, reader.Name, first.Author.Name)
	second, err := r.comments.Create(ctx, p.ID, owner.ID, "thanks")
	require.NoError(t, err)

	list, err := r.comments.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	removed, err := r.comments.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = r.comments.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	gone, err := r.comments.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCascadeDeletes(t *testing.T) {
	r := setup(t)
	ctx := context.Background()

	t.Run("deleting a post removes its comments", func(t *testing.T) {
		u := r.user(t, "a@example.com")
		p := r.post(t, u.ID, "doomed", "Go", true)
		c, err := r.comments.Create(ctx, p.ID, u.ID, "bye")
		require.NoError(t, err)

		removed, err := r.posts.Delete(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		gone, err := r.comments.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		removed, err = r.posts.Delete(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("deleting a user removes their posts and comments", func(t *testing.T) {
		u := r.user(t, "b@example.com")
		other := r.user(t, "c@example.com")
		own := r.post(t, u.ID, "mine", "Go", true)
		foreign := r.post(t, other.ID, "theirs", "Go", true)
		onOwn, err := r.comments.Create(ctx, own.ID, other.ID, "on b's post")
		require.NoError(t, err)
		onForeign, err := r.comments.Create(ctx, foreign.ID, u.ID, "b on c's post")
		require.NoError(t, err)

		removed, err := r.users.Delete(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		p, err := r.posts.GetByID(ctx, own.ID)
		require.NoError(t, err)
		assert.Nil(t, p)
		for _, id := range []int64{onOwn.ID, onForeign.ID} {
			c, err := r.comments.GetByID(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, c)
		}

		survivor, err := r.posts.GetByID(ctx, foreign.ID)
		require.NoError(t, err)
		assert.NotNil(t, survivor)
	})
}
