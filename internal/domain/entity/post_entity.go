package entity

import "time"

// Post is a markdown article owned by exactly one User.
type Post struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	Excerpt   string
	Category  string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostWithAuthor is a Post joined with its owner.
type PostWithAuthor struct {
	Post
	Author Author
}

// OwnedBy reports whether userID is the owner of the post.
func (p Post) OwnedBy(userID int64) bool {
	return p.UserID == userID
}

// NewPost holds the fields required to insert a post.
type NewPost struct {
	UserID    int64
	Title     string
	Content   string
	Excerpt   string
	Category  string
	Published bool
}

// PostPatch is a sparse update; only non-nil fields are written.
type PostPatch struct {
	Title     *string
	Content   *string
	Excerpt   *string
	Category  *string
	Published *bool
}

// Empty reports whether the patch would change nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Excerpt == nil && p.Category == nil && p.Published == nil
}

// CategoryCount is the number of published posts in a category.
type CategoryCount struct {
	Category string
	Count    int64
}
