package handlers

import (
	"time"

	"github.com/achrafato/MarkDown-App/internal/domain/entity"
)

// JSON views of the domain. None of them can carry a password hash.

type userView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type authorView struct {
	ID     int64   `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Bio    *string `json:"bio"`
	Avatar string  `json:"avatar"`
}

type authorStatsView struct {
	userView
	PostCount int64 `json:"post_count"`
}

type postView struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Excerpt   string     `json:"excerpt"`
	Category  string     `json:"category"`
	Published bool       `json:"published"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Author    authorView `json:"author"`
}

type commentView struct {
	ID        int64      `json:"id"`
	PostID    int64      `json:"post_id"`
	UserID    int64      `json:"user_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Author    authorView `json:"author"`
}

type categoryView struct {
	Category  string `json:"category"`
	PostCount int64  `json:"post_count"`
}

type authorPageView struct {
	Author userView   `json:"author"`
	Posts  []postView `json:"posts"`
}

func toUser(u *entity.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toAuthor(a entity.Author) authorView {
	return authorView{ID: a.ID, Email: a.Email, Name: a.Name, Bio: a.Bio, Avatar: a.Avatar}
}

func toPost(p *entity.PostWithAuthor) postView {
	return postView{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		Category:  p.Category,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author:    toAuthor(p.Author),
	}
}

func toPosts(ps []entity.PostWithAuthor) []postView {
	out := make([]postView, 0, len(ps))
	for i := range ps {
		out = append(out, toPost(&ps[i]))
	}
	return out
}

func toComment(c *entity.CommentWithAuthor) commentView {
	return commentView{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Author:    toAuthor(c.Author),
	}
}

func toComments(cs []entity.CommentWithAuthor) []commentView {
	out := make([]commentView, 0, len(cs))
	for i := range cs {
		out = append(out, toComment(&cs[i]))
	}
	return out
}

func toCategories(cs []entity.CategoryCount) []categoryView {
	out := make([]categoryView, 0, len(cs))
	for _, c := range cs {
		out = append(out, categoryView{Category: c.Category, PostCount: c.Count})
	}
	return out
}

func toAuthorStats(as []entity.AuthorStats) []authorStatsView {
	out := make([]authorStatsView, 0, len(as))
	for i := range as {
		out = append(out, authorStatsView{userView: toUser(&as[i].User), PostCount: as[i].PostCount})
	}
	return out
}
