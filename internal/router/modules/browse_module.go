package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/achrafato/MarkDown-App/internal/interface/http"
)

// BrowseModule exposes the public discovery routes.
type BrowseModule struct {
	Handler *handlers.BrowseHandler
}

func NewBrowseModule(h *handlers.BrowseHandler) *BrowseModule {
	return &BrowseModule{Handler: h}
}

func (m *BrowseModule) Register(rg *gin.RouterGroup) {
	rg.GET("/categories", m.Handler.Categories)
	rg.GET("/categories/:category/posts", m.Handler.ByCategory)
	rg.GET("/search", m.Handler.Search)
}
