package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/pkg/helpers"
	"github.com/achrafato/MarkDown-App/pkg/response"
)

const ctxIdentityKey = "identity"

// Identity is the authenticated caller, resolved once per request.
type Identity struct {
	UserID    int64
	SessionID string
}

// IdentityFrom returns the caller set by Auth or OptionalAuth.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// ViewerID is the caller's user id, or 0 for anonymous requests.
func ViewerID(c *gin.Context) int64 {
	id, _ := IdentityFrom(c)
	return id.UserID
}

// Auth requires a valid access token. When sessions is non-nil the token's
// session must still be the user's live one.
func Auth(jwt *helpers.JWTManager, sessions SessionChecker, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, infra, err := verify(c, jwt, sessions)
		if err != nil {
			if infra {
				helpers.LogError(logger, "session lookup failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
				response.Abort(c, http.StatusInternalServerError, "could not verify session", nil)
				return
			}
			response.Abort(c, http.StatusUnauthorized, "authentication required", err.Error())
			return
		}
		c.Set(ctxIdentityKey, id)
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid token is present and lets
// every request through.
func OptionalAuth(jwt *helpers.JWTManager, sessions SessionChecker, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, infra, err := verify(c, jwt, sessions)
		if err == nil {
			c.Set(ctxIdentityKey, id)
		} else if infra {
			logger.WithError(err).Warn("session lookup failed; treating request as anonymous")
		}
		c.Next()
	}
}
