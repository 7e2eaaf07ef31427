package application_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achrafato/MarkDown-App/internal/application"
	"github.com/achrafato/MarkDown-App/internal/domain/entity"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func TestUserService_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.signup(t, "ada@example.com")

	_, err := f.users.UpdateProfile(ctx, u.ID, entity.UserPatch{})
	assert.ErrorIs(t, err, application.ErrNothingToUpdate)

	got, err := f.users.UpdateProfile(ctx, u.ID, entity.UserPatch{Name: ptr(" Ada L. "), Bio: ptr("mathematician")})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "mathematician", *got.Bio)
	assert.Equal(t, entity.DefaultAvatar, got.Avatar)

	_, err = f.users.UpdateProfile(ctx, 999, entity.UserPatch{Bio: ptr("x")})
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestUserService_AuthorPageShowsPublishedOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.signup(t, "ada@example.com")
	pub := f.newPost(t, u.ID, "public", true)
	f.newPost(t, u.ID, "draft", false)

	page, err := f.users.Author(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, page.Author.ID)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, pub.ID, page.Posts[0].ID)

	_, err = f.users.Author(ctx, 999)
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestUserService_AuthorsRanking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiet := f.signup(t, "quiet@example.com")
	busy := f.signup(t, "busy@example.com")
	f.newPost(t, busy.ID, "a", true)
	f.newPost(t, busy.ID, "b", true)
	f.newPost(t, quiet.ID, "c", false)

	ranked, err := f.users.Authors(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, busy.ID, ranked[0].ID)
	assert.EqualValues(t, 2, ranked[0].PostCount)
	assert.EqualValues(t, 0, ranked[1].PostCount)
}
