package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/achrafato/MarkDown-App/internal/interface/http"
)

type CommentModule struct {
	Handler  *handlers.CommentHandler
	Auth     gin.HandlerFunc
	Optional gin.HandlerFunc
}

func NewCommentModule(h *handlers.CommentHandler, auth, optional gin.HandlerFunc) *CommentModule {
	return &CommentModule{Handler: h, Auth: auth, Optional: optional}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts/:id/comments", m.Optional, m.Handler.List)

	comments := rg.Group("/comments")
	comments.Use(m.Auth)
	{
		comments.POST("", m.Handler.Create)
		comments.DELETE("/:id", m.Handler.Delete)
	}
}
