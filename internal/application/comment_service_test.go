package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achrafato/MarkDown-App/internal/application"
	mailtpl "github.com/achrafato/MarkDown-App/pkg/mailer/templates"
)

func TestCommentService_CreateNotifiesOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signup(t, "owner@example.com")
	reader := f.signup(t, "reader@example.com")
	p := f.newPost(t, owner.ID, "Generics", true)
	signupJobs := len(f.jobs.Jobs())

	c, err := f.comments.Create(ctx, reader.ID, p.ID, "  great read  ")
	require.NoError(t, err)
	assert.Equal(t, "great read", c.Content)
	assert.Equal(t, reader.ID, c.Author.ID)

	jobs := f.jobs.Jobs()[signupJobs:]
	require.Len(t, jobs, 1)
	assert.Equal(t, mailtpl.NewComment, jobs[0].Template)
	assert.Equal(t, "owner@example.com", jobs[0].To)
	assert.Equal(t, "Generics", jobs[0].Data["PostTitle"])
	assert.Equal(t, "https://blog.test/posts/"+itoa(p.ID), jobs[0].Data["PostURL"])

	_, err = f.comments.Create(ctx, owner.ID, p.ID, "thanks")
	require.NoError(t, err)
	assert.Len(t, f.jobs.Jobs()[signupJobs:], 1, "owners are not notified of their own comments")
}

func TestCommentService_CreateSurvivesPublisherFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signup(t, "owner@example.com")
	reader := f.signup(t, "reader@example.com")
	p := f.newPost(t, owner.ID, "Generics", true)
	f.jobs.Err = errors.New("broker down")

	_, err := f.comments.Create(ctx, reader.ID, p.ID, "still saved")
	require.NoError(t, err)

	list, err := f.comments.List(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCommentService_DraftPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signup(t, "owner@example.com")
	reader := f.signup(t, "reader@example.com")
	draft := f.newPost(t, owner.ID, "wip", false)

	_, err := f.comments.Create(ctx, reader.ID, draft.ID, "sneaky")
	assert.ErrorIs(t, err, application.ErrPostNotFound)

	_, err = f.comments.List(ctx, draft.ID, reader.ID)
	assert.ErrorIs(t, err, application.ErrPostNotFound)

	_, err = f.comments.Create(ctx, owner.ID, draft.ID, "note to self")
	require.NoError(t, err)
	list, err := f.comments.List(ctx, draft.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCommentService_ListOldestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.signup(t, "ada@example.com")
	p := f.newPost(t, u.ID, "post", true)

	for _, text := range []string{"one", "two", "three"} {
		_, err := f.comments.Create(ctx, u.ID, p.ID, text)
		require.NoError(t, err)
	}
	list, err := f.comments.List(ctx, p.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "one", list[0].Content)
	assert.Equal(t, "three", list[2].Content)
}

func TestCommentService_DeleteAuthorOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signup(t, "owner@example.com")
	reader := f.signup(t, "reader@example.com")
	p := f.newPost(t, owner.ID, "post", true)
	c, err := f.comments.Create(ctx, reader.ID, p.ID, "mine")
	require.NoError(t, err)

	assert.ErrorIs(t, f.comments.Delete(ctx, owner.ID, c.ID), application.ErrForbidden,
		"post owners cannot delete other people's comments")

	require.NoError(t, f.comments.Delete(ctx, reader.ID, c.ID))
	assert.ErrorIs(t, f.comments.Delete(ctx, reader.ID, c.ID), application.ErrCommentNotFound)
}
