package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/config"
	"github.com/achrafato/MarkDown-App/internal/domain/entity"
	repo "github.com/achrafato/MarkDown-App/internal/domain/repository"
	"github.com/achrafato/MarkDown-App/pkg/helpers"
	"github.com/achrafato/MarkDown-App/pkg/mailer"
	mailtpl "github.com/achrafato/MarkDown-App/pkg/mailer/templates"
)

// AuthService issues and revokes sessions.
type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Sessions Sessions
	Jobs     JobPublisher
	Cfg      *config.Config
	Logger   *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, sessions Sessions, jobs JobPublisher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Sessions: sessions, Jobs: jobs, Cfg: cfg, Logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates the account and logs the new user in.
func (s *AuthService) Signup(ctx context.Context, in SignupInput, meta ClientMeta) (*entity.User, TokenPair, error) {
	email := normalizeEmail(in.Email)

	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if existing != nil {
		return nil, TokenPair{}, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	u, err := s.Users.Create(ctx, email, hash, strings.TrimSpace(in.Name))
	if err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, TokenPair{}, ErrEmailTaken
		}
		return nil, TokenPair{}, err
	}

	pair, err := s.IssueTokens(ctx, u, meta)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Cfg, u.Name, u.Email, mailtpl.WithTime(u.CreatedAt)),
	}, logrus.Fields{"user_id": u.ID})

	return u, pair, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	creds, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if creds == nil {
		helpers.BurnPasswordCheck(password)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(creds.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	u := creds.User
	return &u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string, meta ClientMeta) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u, meta)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueTokens generates access/refresh tokens under a fresh session id and
// records it as the user's live session.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User, meta ClientMeta) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}

	if s.Sessions != nil {
		if err := s.Sessions.Save(ctx, u.ID, sid, meta.IP, meta.UserAgent); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("save session failed")
			return TokenPair{}, err
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session. The refresh token must carry the live sid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, meta ClientMeta) (*entity.User, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if u == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if s.Sessions != nil {
		current, err := s.Sessions.Current(ctx, u.ID)
		if err != nil {
			return nil, TokenPair{}, err
		}
		if current == "" || current != claims.SessionID {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u, meta)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if s.Sessions == nil {
		return nil
	}
	return s.Sessions.Revoke(ctx, userID)
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *AuthService) publish(ctx context.Context, job mailer.EmailJob, fields logrus.Fields) {
	if s.Jobs == nil {
		return
	}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithFields(fields).WithField("template", job.Template).Warn("enqueue email failed")
	}
}
