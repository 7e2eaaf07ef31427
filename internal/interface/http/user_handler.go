package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/internal/application"
	"github.com/achrafato/MarkDown-App/internal/domain/entity"
	"github.com/achrafato/MarkDown-App/internal/interface/middleware"
	"github.com/achrafato/MarkDown-App/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger logrus.FieldLogger
}

func NewUserHandler(svc *application.UserService, logger logrus.FieldLogger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Absent fields are left unchanged; at least one must be present.
type updateProfileRequest struct {
	Name   *string `json:"name" binding:"omitempty,notblank,max=100"`
	Bio    *string `json:"bio" binding:"omitempty,max=1000"`
	Avatar *string `json:"avatar" binding:"omitempty,max=2048"`
}

// UpdateProfile PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.ViewerID(c), entity.UserPatch{
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "profile updated", nil)
}

// Authors GET /api/authors
func (h *UserHandler) Authors(c *gin.Context) {
	authors, err := h.Svc.Authors(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAuthorStats(authors), "authors", nil)
}

// Author GET /api/authors/:id
func (h *UserHandler) Author(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	page, err := h.Svc.Author(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, authorPageView{
		Author: toUser(&page.Author),
		Posts:  toPosts(page.Posts),
	}, "author", nil)
}
