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

var meta = application.ClientMeta{IP: "127.0.0.1", UserAgent: "test"}

func TestAuthService_Signup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, pair, err := f.auth.Signup(ctx, application.SignupInput{
		Email: "  Ada@Example.com ", Password: "secret1", Name: " Ada ",
	}, meta)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Ada", u.Name)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := f.jwt.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	sid, _ := f.sessions.Current(ctx, u.ID)
	assert.Equal(t, claims.SessionID, sid)

	jobs := f.jobs.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, mailtpl.Welcome, jobs[0].Template)
	assert.Equal(t, "ada@example.com", jobs[0].To)

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := f.auth.Signup(ctx, application.SignupInput{
			Email: "ADA@example.com", Password: "another", Name: "Imposter",
		}, meta)
		assert.ErrorIs(t, err, application.ErrEmailTaken)
	})
}

func TestAuthService_SignupSurvivesPublisherFailure(t *testing.T) {
	f := newFixture(t)
	f.jobs.Err = errors.New("broker down")

	u, _, err := f.auth.Signup(context.Background(), application.SignupInput{
		Email: "bob@example.com", Password: "secret1", Name: "Bob",
	}, meta)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.auth.Signup(ctx, application.SignupInput{Email: "ada@example.com", Password: "secret1", Name: "Ada"}, meta)
	require.NoError(t, err)

	cases := []struct {
		name, email, password string
		wantErr               error
	}{
		{"valid", "ada@example.com", "secret1", nil},
		{"email case ignored", "ADA@example.com", "secret1", nil},
		{"wrong password", "ada@example.com", "secret2", application.ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "secret1", application.ErrInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, _, err := f.auth.Login(ctx, tc.email, tc.password, meta)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ada@example.com", u.Email)
		})
	}

	t.Run("store failure is not reported as bad credentials", func(t *testing.T) {
		f.store.Err = errors.New("connection refused")
		defer func() { f.store.Err = nil }()
		_, _, err := f.auth.Login(ctx, "ada@example.com", "secret1", meta)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, application.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshRotatesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, first, err := f.auth.Signup(ctx, application.SignupInput{Email: "ada@example.com", Password: "secret1", Name: "Ada"}, meta)
	require.NoError(t, err)

	_, second, err := f.auth.Refresh(ctx, first.RefreshToken, meta)
	require.NoError(t, err)

	oldClaims, _ := f.jwt.ParseRefreshToken(first.RefreshToken)
	newClaims, _ := f.jwt.ParseRefreshToken(second.RefreshToken)
	assert.NotEqual(t, oldClaims.SessionID, newClaims.SessionID)

	_, _, err = f.auth.Refresh(ctx, first.RefreshToken, meta)
	assert.ErrorIs(t, err, application.ErrInvalidCredentials, "the rotated-out refresh token is dead")

	require.NoError(t, f.auth.Logout(ctx, u.ID))
	_, _, err = f.auth.Refresh(ctx, second.RefreshToken, meta)
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	_, _, err = f.auth.Refresh(ctx, "garbage", meta)
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
}

func TestAuthService_WithoutSessions(t *testing.T) {
	f := newFixture(t)
	f.auth.Sessions = nil
	ctx := context.Background()

	u, pair, err := f.auth.Signup(ctx, application.SignupInput{Email: "ada@example.com", Password: "secret1", Name: "Ada"}, meta)
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx, u.ID))

	_, _, err = f.auth.Refresh(ctx, pair.RefreshToken, meta)
	assert.NoError(t, err, "stateless tokens stay valid until expiry")
}

func TestAuthService_Me(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, _, err := f.auth.Signup(ctx, application.SignupInput{Email: "ada@example.com", Password: "secret1", Name: "Ada"}, meta)
	require.NoError(t, err)

	me, err := f.auth.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)

	_, err = f.auth.Me(ctx, 999)
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}
