package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/achrafato/MarkDown-App/pkg/helpers"
)

var (
	errNoToken        = errors.New("missing access token")
	errSessionRevoked = errors.New("session revoked")
)

// SessionChecker reports the live session id of a user ("" when none).
type SessionChecker interface {
	Current(ctx context.Context, userID int64) (string, error)
}

// accessToken reads the access_token cookie, falling back to an Authorization: Bearer header.
func accessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// verify turns the request's token into an Identity. errSessionRevoked and
// errNoToken are caller errors; anything else from sessions is infrastructure.
func verify(c *gin.Context, jwt *helpers.JWTManager, sessions SessionChecker) (Identity, bool, error) {
	token := accessToken(c)
	if token == "" {
		return Identity{}, false, errNoToken
	}
	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		return Identity{}, false, err
	}
	if sessions != nil {
		sid, err := sessions.Current(c.Request.Context(), claims.UserID)
		if err != nil {
			return Identity{}, true, err
		}
		if sid == "" || sid != claims.SessionID {
			return Identity{}, false, errSessionRevoked
		}
	}
	return Identity{UserID: claims.UserID, SessionID: claims.SessionID}, false, nil
}
