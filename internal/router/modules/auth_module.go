package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/achrafato/MarkDown-App/internal/interface/http"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
	Limits  Limits
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc, limits Limits) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// credential endpoints share one per-IP, per-route budget
	rl := m.Limits.perIPAndPath()
	rg.POST("/auth/signup", rl, m.Handler.Signup)
	rg.POST("/auth/login", rl, m.Handler.Login)
	rg.POST("/auth/refresh", rl, m.Handler.Refresh)

	auth := rg.Group("/auth")
	auth.Use(m.Auth)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
