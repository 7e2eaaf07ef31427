package router

import "github.com/gin-gonic/gin"

// Module is one slice of the blog API (auth, posts, comments...). Register
// mounts its routes under /api; access rules are attached per route.
type Module interface {
	Register(api *gin.RouterGroup)
}
