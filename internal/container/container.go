package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/config"
	"github.com/achrafato/MarkDown-App/internal/application"
	repo "github.com/achrafato/MarkDown-App/internal/domain/repository"
	pginfra "github.com/achrafato/MarkDown-App/internal/infrastructure/postgres"
	"github.com/achrafato/MarkDown-App/pkg/helpers"
)

// Container holds the components shared across the HTTP layer. It is built
// once at startup and handed to the router; nothing here is global.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	DB     *pgxpool.Pool
	Redis  *redis.Client

	JWT     *helpers.JWTManager
	Cookies *helpers.Manager

	// Sessions is nil when Redis is disabled; tokens are then stateless.
	Sessions application.Sessions
	// Jobs is nil when e-mail sending is disabled.
	Jobs application.JobPublisher

	Users    repo.UserRepository
	Posts    repo.PostRepository
	Comments repo.CommentRepository

	AuthService    *application.AuthService
	UserService    *application.UserService
	PostService    *application.PostService
	CommentService *application.CommentService
}

// New wires the Postgres repositories and, when given, the Redis session
// store and the RabbitMQ publisher. rdb and pub may be nil.
func New(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool, rdb *redis.Client, pub *helpers.RabbitPublisher) *Container {
	c := &Container{
		Cfg:      cfg,
		Logger:   logger,
		DB:       pool,
		Redis:    rdb,
		Users:    pginfra.NewUserRepository(pool),
		Posts:    pginfra.NewPostRepository(pool),
		Comments: pginfra.NewCommentRepository(pool),
	}
	// assign only non-nil pointers so the interfaces stay nil otherwise
	if rdb != nil {
		c.Sessions = helpers.NewRedisSessions(rdb, cfg.SessionTTL)
	}
	if pub != nil {
		c.Jobs = pub
	}
	return c.Wire()
}

// Wire builds the token manager, cookie manager and services from the
// repositories and ports already set on c.
func (c *Container) Wire() *Container {
	cfg := c.Cfg
	c.JWT = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	c.Cookies = helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	c.AuthService = application.NewAuthService(c.Users, c.JWT, c.Sessions, c.Jobs, cfg, c.Logger)
	c.UserService = application.NewUserService(c.Users, c.Posts)
	c.PostService = application.NewPostService(c.Posts, c.Logger, cfg.DefaultPageSize, cfg.MaxPageSize)
	c.CommentService = application.NewCommentService(c.Comments, c.Posts, c.Jobs, cfg, c.Logger)
	return c
}
