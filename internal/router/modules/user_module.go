package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/achrafato/MarkDown-App/internal/interface/http"
)

// UserModule serves the profile editor and the public author pages.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/authors", m.Handler.Authors)
	rg.GET("/authors/:id", m.Handler.Author)

	rg.PUT("/users/profile", m.Auth, m.Handler.UpdateProfile)
}
