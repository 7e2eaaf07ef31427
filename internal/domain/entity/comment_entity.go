package entity

import "time"

// Comment is a reply to a Post written by a User.
type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentWithAuthor is a Comment joined with its author.
type CommentWithAuthor struct {
	Comment
	Author Author
}

// WrittenBy reports whether userID authored the comment.
func (c Comment) WrittenBy(userID int64) bool {
	return c.UserID == userID
}
