package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentOut struct {
	ID      int64  `json:"id"`
	PostID  int64  `json:"post_id"`
	Content string `json:"content"`
	Author  struct {
		Name string `json:"name"`
	} `json:"author"`
}

func TestComments(t *testing.T) {
	s := newServer(t)
	_, owner := s.signup("owner@example.com", "Owner")
	_, reader := s.signup("reader@example.com", "Reader")
	p := s.createPost(owner, "Hello", "Life", true)

	post := func(tok string, postID int64, content string) (int, commentOut) {
		w, env := s.do(call{method: http.MethodPost, path: "/api/comments", token: tok, body: map[string]any{
			"post_id": postID, "content": content,
		}})
		var c commentOut
		if w.Code == http.StatusCreated {
			decode(t, env.Data, &c)
		}
		return w.Code, c
	}

	code, first := post(reader, p.ID, "  first!  ")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "first!", first.Content)
	assert.Equal(t, "Reader", first.Author.Name)
	code, _ = post(owner, p.ID, "thanks")
	require.Equal(t, http.StatusCreated, code)

	// only the reader's comment notifies the owner
	var notices int
	for _, j := range s.jobs.Jobs() {
		if j.Template == "new_comment" {
			notices++
			assert.Equal(t, "owner@example.com", j.To)
		}
	}
	assert.Equal(t, 1, notices)

	w, env := s.do(call{method: http.MethodGet, path: fmt.Sprintf("/api/posts/%d/comments", p.ID)})
	require.Equal(t, http.StatusOK, w.Code)
	var list []commentOut
	decode(t, env.Data, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "first!", list[0].Content)
	assert.Equal(t, "thanks", list[1].Content)

	code, _ = post(reader, 9999, "into the void")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = post(reader, p.ID, "   ")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = post(reader, 0, "no post")
	assert.Equal(t, http.StatusBadRequest, code)

	del := fmt.Sprintf("/api/comments/%d", first.ID)
	w, _ = s.do(call{method: http.MethodDelete, path: del, token: owner})
	assert.Equal(t, http.StatusForbidden, w.Code, "post owner cannot delete someone else's comment")
	w, _ = s.do(call{method: http.MethodDelete, path: del, token: reader})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(call{method: http.MethodDelete, path: del, token: reader})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentsOnDrafts(t *testing.T) {
	s := newServer(t)
	_, owner := s.signup("owner@example.com", "Owner")
	_, reader := s.signup("reader@example.com", "Reader")
	draft := s.createPost(owner, "WIP", "Life", false)
	path := fmt.Sprintf("/api/posts/%d/comments", draft.ID)

	w, _ := s.do(call{method: http.MethodGet, path: path, token: reader})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(call{method: http.MethodPost, path: "/api/comments", token: reader, body: map[string]any{
		"post_id": draft.ID, "content": "sneaky",
	}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := s.do(call{method: http.MethodGet, path: path, token: owner})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))
}
