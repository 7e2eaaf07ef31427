package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/achrafato/MarkDown-App/internal/domain/entity"
	"github.com/achrafato/MarkDown-App/internal/domain/repository"
)

// MemoryStore is an in-memory stand-in for the Postgres store. Its three
// repository views share one set of tables so joins and cascades behave.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[int64]*entity.UserCredentials
	posts    map[int64]*entity.Post
	comments map[int64]*entity.Comment
	seq      int64
	clock    time.Time

	// Err, when set, is returned by every operation.
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    map[int64]*entity.UserCredentials{},
		posts:    map[int64]*entity.Post{},
		comments: map[int64]*entity.Comment{},
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *MemoryStore) Users() *MemoryUsers       { return &MemoryUsers{s} }
func (s *MemoryStore) Posts() *MemoryPosts       { return &MemoryPosts{s} }
func (s *MemoryStore) Comments() *MemoryComments { return &MemoryComments{s} }

// tick advances the clock so every write gets a distinct, increasing timestamp.
func (s *MemoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *MemoryStore) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *MemoryStore) author(id int64) entity.Author {
	u := s.users[id]
	if u == nil {
		return entity.Author{ID: id}
	}
	return entity.Author{ID: u.ID, Email: u.Email, Name: u.Name, Bio: u.Bio, Avatar: u.Avatar}
}

func (s *MemoryStore) withAuthor(p *entity.Post) entity.PostWithAuthor {
	return entity.PostWithAuthor{Post: *p, Author: s.author(p.UserID)}
}

func (s *MemoryStore) filterPosts(keep func(*entity.Post) bool) []entity.PostWithAuthor {
	out := []entity.PostWithAuthor{}
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, s.withAuthor(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

type MemoryUsers struct{ s *MemoryStore }

var _ repository.UserRepository = (*MemoryUsers)(nil)

func (r *MemoryUsers) Create(_ context.Context, email, passwordHash, name string) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	now := s.tick()
	u := &entity.UserCredentials{
		User: entity.User{
			ID: s.nextID(), Email: email, Name: name, Avatar: entity.DefaultAvatar,
			CreatedAt: now, UpdatedAt: now,
		},
		PasswordHash: passwordHash,
	}
	s.users[u.ID] = u
	out := u.User
	return &out, nil
}

func (r *MemoryUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := u.User
	return &out, nil
}

func (r *MemoryUsers) GetByEmail(_ context.Context, email string) (*entity.UserCredentials, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryUsers) Update(_ context.Context, id int64, patch entity.UserPatch) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Bio != nil {
		bio := *patch.Bio
		u.Bio = &bio
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	u.UpdatedAt = s.tick()
	out := u.User
	return &out, nil
}

func (r *MemoryUsers) Delete(_ context.Context, id int64) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	for pid, p := range s.posts {
		if p.UserID == id {
			delete(s.posts, pid)
		}
	}
	for cid, c := range s.comments {
		if c.UserID == id || s.posts[c.PostID] == nil {
			delete(s.comments, cid)
		}
	}
	return true, nil
}

func (r *MemoryUsers) ListWithPostCount(_ context.Context) ([]entity.AuthorStats, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []entity.AuthorStats{}
	for _, u := range s.users {
		var n int64
		for _, p := range s.posts {
			if p.UserID == u.ID && p.Published {
				n++
			}
		}
		out = append(out, entity.AuthorStats{User: u.User, PostCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PostCount != out[j].PostCount {
			return out[i].PostCount > out[j].PostCount
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type MemoryPosts struct{ s *MemoryStore }

var _ repository.PostRepository = (*MemoryPosts)(nil)

func (r *MemoryPosts) Create(_ context.Context, in entity.NewPost) (*entity.PostWithAuthor, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	now := s.tick()
	p := &entity.Post{
		ID: s.nextID(), UserID: in.UserID, Title: in.Title, Content: in.Content,
		Excerpt: in.Excerpt, Category: in.Category, Published: in.Published,
		CreatedAt: now, UpdatedAt: now,
	}
	s.posts[p.ID] = p
	out := s.withAuthor(p)
	return &out, nil
}

func (r *MemoryPosts) GetByID(_ context.Context, id int64) (*entity.PostWithAuthor, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	out := s.withAuthor(p)
	return &out, nil
}

func (r *MemoryPosts) ListPublished(_ context.Context, limit, offset int) ([]entity.PostWithAuthor, error) {
	all, err := r.list(func(p *entity.Post) bool { return p.Published })
	if err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return []entity.PostWithAuthor{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryPosts) ListByUser(_ context.Context, userID int64) ([]entity.PostWithAuthor, error) {
	return r.list(func(p *entity.Post) bool { return p.UserID == userID })
}

func (r *MemoryPosts) ListPublishedByUser(_ context.Context, userID int64) ([]entity.PostWithAuthor, error) {
	return r.list(func(p *entity.Post) bool { return p.UserID == userID && p.Published })
}

func (r *MemoryPosts) ListByCategory(_ context.Context, category string) ([]entity.PostWithAuthor, error) {
	return r.list(func(p *entity.Post) bool {
		return p.Published && strings.EqualFold(p.Category, category)
	})
}

func (r *MemoryPosts) Search(_ context.Context, query string) ([]entity.PostWithAuthor, error) {
	q := strings.ToLower(query)
	return r.list(func(p *entity.Post) bool {
		if !p.Published {
			return false
		}
		for _, f := range []string{p.Title, p.Content, p.Excerpt, p.Category} {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	})
}

func (r *MemoryPosts) CategoryCounts(_ context.Context) ([]entity.CategoryCount, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	counts := map[string]int64{}
	for _, p := range s.posts {
		if p.Published {
			counts[p.Category]++
		}
	}
	out := []entity.CategoryCount{}
	for c, n := range counts {
		out = append(out, entity.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *MemoryPosts) Update(_ context.Context, id int64, patch entity.PostPatch) (*entity.PostWithAuthor, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
	p.UpdatedAt = s.tick()
	out := s.withAuthor(p)
	return &out, nil
}

func (r *MemoryPosts) Delete(_ context.Context, id int64) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.posts[id]; !ok {
		return false, nil
	}
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	return true, nil
}

func (r *MemoryPosts) list(keep func(*entity.Post) bool) ([]entity.PostWithAuthor, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.filterPosts(keep), nil
}

type MemoryComments struct{ s *MemoryStore }

var _ repository.CommentRepository = (*MemoryComments)(nil)

func (r *MemoryComments) ListByPost(_ context.Context, postID int64) ([]entity.CommentWithAuthor, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []entity.CommentWithAuthor{}
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, entity.CommentWithAuthor{Comment: *c, Author: s.author(c.UserID)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryComments) GetByID(_ context.Context, id int64) (*entity.Comment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *MemoryComments) Create(_ context.Context, postID, userID int64, content string) (*entity.CommentWithAuthor, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	now := s.tick()
	c := &entity.Comment{
		ID: s.nextID(), PostID: postID, UserID: userID, Content: content,
		CreatedAt: now, UpdatedAt: now,
	}
	s.comments[c.ID] = c
	return &entity.CommentWithAuthor{Comment: *c, Author: s.author(userID)}, nil
}

func (r *MemoryComments) Delete(_ context.Context, id int64) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.comments[id]; !ok {
		return false, nil
	}
	delete(s.comments, id)
	return true, nil
}
