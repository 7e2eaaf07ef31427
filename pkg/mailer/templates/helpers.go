package templates

import (
	"time"
	"unicode/utf8"

	"github.com/achrafato/MarkDown-App/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithPost(title, url string) Option {
	return func(d *EmailData) {
		d.PostTitle = title
		d.PostURL = url
	}
}

// WithComment attaches the commenter and the first 140 characters of the comment.
func WithComment(commenter, content string) Option {
	return func(d *EmailData) {
		d.CommenterName = commenter
		d.CommentExcerpt = truncate(content, 140)
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:    name,
		Email:   email,
		AppName: cfg.AppName,
		AppURL:  cfg.AppBaseURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, name, email, opts...))
}

func NewCommentData(cfg *config.Config, ownerName, ownerEmail string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, ownerName, ownerEmail, opts...))
}
