package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/achrafato/MarkDown-App/config"
	"github.com/achrafato/MarkDown-App/internal/container"
	"github.com/achrafato/MarkDown-App/internal/router"
	"github.com/achrafato/MarkDown-App/internal/testutil"
	"github.com/achrafato/MarkDown-App/pkg/helpers"
	"github.com/achrafato/MarkDown-App/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	helpers.BcryptCost = bcrypt.MinCost
	validation.Init()
	m.Run()
}

type envelope struct {
	Status  int               `json:"status"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    json.RawMessage   `json:"meta"`
	Error   any               `json:"error"`
}

type server struct {
	t        *testing.T
	engine   *gin.Engine
	store    *testutil.MemoryStore
	sessions *testutil.MemorySessions
	jobs     *testutil.RecordingPublisher
}

func newServer(t *testing.T) *server {
	t.Helper()
	store := testutil.NewMemoryStore()
	s := &server{t: t, store: store, sessions: testutil.NewMemorySessions(), jobs: &testutil.RecordingPublisher{}}
	c := &container.Container{
		Cfg: &config.Config{
			AppName:          "Blog",
			AppBaseURL:       "https://blog.test",
			JWTAccessSecret:  "access",
			JWTRefreshSecret: "refresh",
			AccessTTL:        time.Minute,
			RefreshTTL:       time.Hour,
			DefaultPageSize:  10,
			MaxPageSize:      50,
		},
		Logger:   helpers.NewNopLogger(),
		Users:    store.Users(),
		Posts:    store.Posts(),
		Comments: store.Comments(),
		Sessions: s.sessions,
		Jobs:     s.jobs,
	}
	s.engine = router.New(c.Wire())
	return s
}

type call struct {
	method, path string
	body         any
	token        string
	cookies      []*http.Cookie
}

func (s *server) do(c call) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if c.body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// signup registers a user and returns its id and access token.
func (s *server) signup(email, name string) (int64, string) {
	s.t.Helper()
	w, env := s.do(call{method: http.MethodPost, path: "/api/auth/signup", body: map[string]string{
		"email": email, "password": "secret123", "name": name,
	}})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var u struct {
		ID int64 `json:"id"`
	}
	decode(s.t, env.Data, &u)
	access := cookieNamed(w, helpers.AccessCookie)
	require.NotNil(s.t, access)
	return u.ID, access.Value
}

type postOut struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Excerpt   string `json:"excerpt"`
	Category  string `json:"category"`
	Published bool   `json:"published"`
	Author    struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"author"`
}

func (s *server) createPost(token, title, category string, published bool) postOut {
	s.t.Helper()
	w, env := s.do(call{method: http.MethodPost, path: "/api/posts", token: token, body: map[string]any{
		"title": title, "content": "# " + title, "excerpt": "about " + title, "category": category, "published": published,
	}})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var p postOut
	decode(s.t, env.Data, &p)
	return p
}

func decode(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}
