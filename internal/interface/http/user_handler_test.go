package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	s := newServer(t)
	_, tok := s.signup("ada@example.com", "Ada")

	w, _ := s.do(call{method: http.MethodPut, path: "/api/users/profile", token: tok, body: map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code, "at least one field")

	w, _ = s.do(call{method: http.MethodPut, path: "/api/users/profile", token: tok, body: map[string]any{"name": " "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := s.do(call{method: http.MethodPut, path: "/api/users/profile", token: tok, body: map[string]any{"bio": "Countess of Lovelace"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var u struct {
		Name   string  `json:"name"`
		Bio    *string `json:"bio"`
		Avatar string  `json:"avatar"`
	}
	decode(t, env.Data, &u)
	assert.Equal(t, "Ada", u.Name)
	require.NotNil(t, u.Bio)
	assert.Equal(t, "Countess of Lovelace", *u.Bio)

	w, env = s.do(call{method: http.MethodPut, path: "/api/users/profile", token: tok, body: map[string]any{"name": "Ada L.", "avatar": "/a.png"}})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env.Data, &u)
	assert.Equal(t, "Ada L.", u.Name)
	assert.Equal(t, "/a.png", u.Avatar)
	assert.Equal(t, "Countess of Lovelace", *u.Bio)
}
