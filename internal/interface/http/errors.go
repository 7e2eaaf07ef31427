package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/internal/application"
	repo "github.com/achrafato/MarkDown-App/internal/domain/repository"
	"github.com/achrafato/MarkDown-App/pkg/helpers"
	"github.com/achrafato/MarkDown-App/pkg/response"
	"github.com/achrafato/MarkDown-App/pkg/validation"
)

// statusFor is the single mapping from service errors to HTTP status.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrPostNotFound),
		errors.Is(err, application.ErrCommentNotFound),
		errors.Is(err, application.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, application.ErrNothingToUpdate):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, application.ErrEmailTaken), errors.Is(err, repo.ErrDuplicateEmail):
		return http.StatusConflict, application.ErrEmailTaken.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// fail writes the error envelope for err. Server errors are logged, never echoed.
func fail(c *gin.Context, logger logrus.FieldLogger, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		})
	}
	response.Error[any](c, status, msg, nil)
}

func invalid(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// idParam reads a positive int64 path parameter, writing a 400 when it is not one.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid "+name, map[string]string{name: "must be a positive integer"})
		return 0, false
	}
	return id, true
}
