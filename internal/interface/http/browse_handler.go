package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/internal/application"
	"github.com/achrafato/MarkDown-App/pkg/response"
)

// BrowseHandler serves the public discovery endpoints: categories and search.
type BrowseHandler struct {
	Posts  *application.PostService
	Logger logrus.FieldLogger
}

func NewBrowseHandler(posts *application.PostService, logger logrus.FieldLogger) *BrowseHandler {
	return &BrowseHandler{Posts: posts, Logger: logger}
}

// Categories GET /api/categories
func (h *BrowseHandler) Categories(c *gin.Context) {
	counts, err := h.Posts.Categories(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toCategories(counts), "categories", nil)
}

// ByCategory GET /api/categories/:category/posts
func (h *BrowseHandler) ByCategory(c *gin.Context) {
	posts, err := h.Posts.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toPosts(posts), "posts", nil)
}

// Search GET /api/search?q=
func (h *BrowseHandler) Search(c *gin.Context) {
	posts, err := h.Posts.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toPosts(posts), "search results", nil)
}
