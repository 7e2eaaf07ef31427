package helpers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// KeyUserSession is the Redis hash holding a user's current login session.
func KeyUserSession(userID int64) string {
	return "user:session:" + strconv.FormatInt(userID, 10)
}

// RedisSessions keeps one live session per user. Tokens carrying any other
// sid are treated as revoked.
type RedisSessions struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessions(rdb *redis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{rdb: rdb, ttl: ttl}
}

// Save replaces the user's session.
func (s *RedisSessions) Save(ctx context.Context, userID int64, sid, ip, userAgent string) error {
	key := KeyUserSession(userID)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    userID,
		"sid":        sid,
		"ip":         ip,
		"user_agent": userAgent,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Current returns the live sid, or "" when the user has no session.
func (s *RedisSessions) Current(ctx context.Context, userID int64) (string, error) {
	sid, err := s.rdb.HGet(ctx, KeyUserSession(userID), "sid").Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return sid, err
}

func (s *RedisSessions) Revoke(ctx context.Context, userID int64) error {
	return s.rdb.Del(ctx, KeyUserSession(userID)).Err()
}
