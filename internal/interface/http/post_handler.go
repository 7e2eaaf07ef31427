package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/internal/application"
	"github.com/achrafato/MarkDown-App/internal/domain/entity"
	"github.com/achrafato/MarkDown-App/internal/interface/middleware"
	"github.com/achrafato/MarkDown-App/pkg/response"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger logrus.FieldLogger
}

func NewPostHandler(svc *application.PostService, logger logrus.FieldLogger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Title     string `json:"title" binding:"required,title"`
	Content   string `json:"content" binding:"required,notblank"`
	Excerpt   string `json:"excerpt" binding:"required,notblank,max=500"`
	Category  string `json:"category" binding:"required,category"`
	Published bool   `json:"published"`
}

type updatePostRequest struct {
	Title     *string `json:"title" binding:"omitempty,title"`
	Content   *string `json:"content" binding:"omitempty,notblank"`
	Excerpt   *string `json:"excerpt" binding:"omitempty,notblank,max=500"`
	Category  *string `json:"category" binding:"omitempty,category"`
	Published *bool   `json:"published"`
}

// queryInt returns 0 for missing or malformed values; the service clamps it.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// ListPublished GET /api/posts/published?page=&limit=
func (h *PostHandler) ListPublished(c *gin.Context) {
	page, err := h.Svc.ListPublished(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toPosts(page.Posts), "posts", response.PageMeta{
		Page:    page.Page,
		Limit:   page.Limit,
		HasMore: page.HasMore,
	})
}

// Get GET /api/posts/:id. Drafts are only visible to their owner.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id, middleware.ViewerID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toPost(p), "post", nil)
}

// Mine GET /api/posts, the caller's dashboard including drafts.
func (h *PostHandler) Mine(c *gin.Context) {
	posts, err := h.Svc.ListMine(c.Request.Context(), middleware.ViewerID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toPosts(posts), "posts", nil)
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), middleware.ViewerID(c), application.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Category:  req.Category,
		Published: req.Published,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toPost(p), "post created", nil)
}

// Update PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), middleware.ViewerID(c), id, entity.PostPatch{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Category:  req.Category,
		Published: req.Published,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toPost(p), "post updated", nil)
}

// Delete DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), middleware.ViewerID(c), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "post deleted", nil)
}
