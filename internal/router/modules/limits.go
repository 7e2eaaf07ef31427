package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/achrafato/MarkDown-App/internal/interface/middleware"
)

// Limits configures the Redis limiter for the credential endpoints.
// A nil Redis turns every limiter into a pass-through.
type Limits struct {
	Redis  *redis.Client
	Max    int
	Window time.Duration
	Allow  middleware.AllowFunc
}

func (l Limits) perIPAndPath() gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, l.Max, l.Window, middleware.KeyByIPAndPath(), l.Allow)
}
