package validation_test

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achrafato/MarkDown-App/pkg/validation"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	Name     string `json:"name" validate:"required,notblank"`
}

type post struct {
	Title    *string `json:"title" validate:"omitempty,title"`
	Category string  `json:"category" validate:"required,category"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.Register(v)
	return v
}

func TestToDetails_Validation(t *testing.T) {
	v := newValidator()

	err := v.Struct(signup{Email: "nope", Password: "12345", Name: "   "})
	require.Error(t, err)

	details := validation.ToDetails(err)
	assert.Equal(t, map[string]string{
		"email":    "must be a valid email",
		"password": "must be between 6 and 72 characters long",
		"name":     "must not be blank",
	}, details)

	assert.NoError(t, v.Struct(signup{Email: "a@b.co", Password: "123456", Name: "Ada"}))
	assert.Error(t, v.Struct(signup{Email: "a@b.co", Password: strings.Repeat("x", 73), Name: "Ada"}))
}

func TestToDetails_Aliases(t *testing.T) {
	v := newValidator()
	blank := "  "

	details := validation.ToDetails(v.Struct(post{Title: &blank, Category: strings.Repeat("c", 51)}))
	assert.Contains(t, details["title"], "must not be blank")
	assert.Contains(t, details["category"], "at most 50")

	assert.NoError(t, v.Struct(post{Category: "Go"}), "absent title is allowed")
}

func TestToDetails_Payloads(t *testing.T) {
	assert.Nil(t, validation.ToDetails(nil))
	assert.Equal(t, "request body is empty", validation.ToDetails(io.EOF)["payload"])

	var dst struct {
		Published bool `json:"published"`
	}
	err := json.Unmarshal([]byte(`{"published":"yes"}`), &dst)
	assert.Equal(t, map[string]string{"published": "must be a bool"}, validation.ToDetails(err))

	err = json.Unmarshal([]byte(`{`), &dst)
	assert.Equal(t, "invalid json", validation.ToDetails(err)["payload"])

	assert.Equal(t, "invalid payload", validation.ToDetails(errors.New("boom"))["payload"])
}
