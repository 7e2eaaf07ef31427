package application

import "context"

// Sessions tracks the live session id per user. A nil Sessions means tokens
// are trusted until they expire.
type Sessions interface {
	Save(ctx context.Context, userID int64, sid, ip, userAgent string) error
	Current(ctx context.Context, userID int64) (string, error)
	Revoke(ctx context.Context, userID int64) error
}

// JobPublisher enqueues background jobs such as e-mails.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ClientMeta describes the caller of a login-like request.
type ClientMeta struct {
	IP        string
	UserAgent string
}
