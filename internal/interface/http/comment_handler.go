package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/internal/application"
	"github.com/achrafato/MarkDown-App/internal/interface/middleware"
	"github.com/achrafato/MarkDown-App/pkg/response"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger logrus.FieldLogger
}

func NewCommentHandler(svc *application.CommentService, logger logrus.FieldLogger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type createCommentRequest struct {
	PostID  int64  `json:"post_id" binding:"required,gt=0"`
	Content string `json:"content" binding:"required,notblank,max=5000"`
}

// List GET /api/posts/:id/comments, oldest first.
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := idParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.Svc.List(c.Request.Context(), postID, middleware.ViewerID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toComments(comments), "comments", nil)
}

// Create POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	cm, err := h.Svc.Create(c.Request.Context(), middleware.ViewerID(c), req.PostID, req.Content)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toComment(cm), "comment created", nil)
}

// Delete DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), middleware.ViewerID(c), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "comment deleted", nil)
}
