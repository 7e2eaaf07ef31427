package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/achrafato/MarkDown-App/internal/container"
	handlers "github.com/achrafato/MarkDown-App/internal/interface/http"
	"github.com/achrafato/MarkDown-App/internal/interface/middleware"
	"github.com/achrafato/MarkDown-App/internal/router/modules"
	"github.com/achrafato/MarkDown-App/pkg/response"
)

// New builds the gin engine: global middleware, /health and every API module under /api.
func New(c *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if c.Cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(c.Logger))
	}
	// no configured origins means same-origin only
	if origins := c.Cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", health(c))

	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

// InitModules builds the handlers from the container and registers every feature module.
func InitModules(r *Registry, c *container.Container) {
	auth := middleware.Auth(c.JWT, c.Sessions, c.Logger)
	optional := middleware.OptionalAuth(c.JWT, c.Sessions, c.Logger)

	limit := modules.Limits{Redis: c.Redis, Max: c.Cfg.AuthRateLimit, Window: c.Cfg.AuthRateWindow}
	if c.Cfg.Env == "development" {
		limit.Allow = middleware.AllowPrivateIP()
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.AuthService, c.Cookies, c.Logger), auth, limit))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.UserService, c.Logger), auth))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(c.PostService, c.Logger), auth, optional))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(c.CommentService, c.Logger), auth, optional))
	r.Add(modules.NewBrowseModule(handlers.NewBrowseHandler(c.PostService, c.Logger)))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limit.Redis))
	}
}

func health(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c.DB != nil {
			pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
			defer cancel()
			if err := c.DB.Ping(pingCtx); err != nil {
				c.Logger.WithError(err).Error("health check: database unreachable")
				response.Error[any](ctx, http.StatusServiceUnavailable, "database unreachable", nil)
				return
			}
		}
		response.Success[any](ctx, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
	}
}
