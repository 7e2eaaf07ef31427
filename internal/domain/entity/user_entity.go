package entity

import (
	"time"
)

// DefaultAvatar is the avatar path assigned by the store when none is set.
const DefaultAvatar = "/avatar.png"

// User is the aggregate root for the user domain.
// It never carries the password hash; see UserCredentials.
type User struct {
	ID        int64
	Email     string
	Name      string
	Bio       *string
	Avatar    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserCredentials is a User plus its bcrypt hash.
// Only the email lookup returns it, strictly for password verification.
type UserCredentials struct {
	User
	PasswordHash string
}

// UserPatch lists the profile fields that may change. Nil means "leave as is".
type UserPatch struct {
	Name   *string
	Bio    *string
	Avatar *string
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Bio == nil && p.Avatar == nil
}

// Author is the public projection of a User joined onto posts and comments.
type Author struct {
	ID     int64
	Email  string
	Name   string
	Bio    *string
	Avatar string
}

// AuthorStats is a User together with the number of posts they have published.
type AuthorStats struct {
	User
	PostCount int64
}
