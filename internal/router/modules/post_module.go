package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/achrafato/MarkDown-App/internal/interface/http"
)

type PostModule struct {
	Handler  *handlers.PostHandler
	Auth     gin.HandlerFunc
	Optional gin.HandlerFunc
}

func NewPostModule(h *handlers.PostHandler, auth, optional gin.HandlerFunc) *PostModule {
	return &PostModule{Handler: h, Auth: auth, Optional: optional}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts/published", m.Handler.ListPublished)
	rg.GET("/posts/:id", m.Optional, m.Handler.Get)

	posts := rg.Group("/posts")
	posts.Use(m.Auth)
	{
		posts.GET("", m.Handler.Mine)
		posts.POST("", m.Handler.Create)
		posts.PUT("/:id", m.Handler.Update)
		posts.DELETE("/:id", m.Handler.Delete)
	}
}
