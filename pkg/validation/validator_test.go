package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Title string `json:"title" binding:"required,max=10"`
	ISBN  string `json:"isbn" binding:"required,isbn"`
	Email string `json:"email" binding:"omitempty,email"`
}

func validate(t *testing.T, v interface{}) error {
	t.Helper()
	Init()
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return engine.Struct(v)
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	err := validate(t, sampleBody{ISBN: "junk", Email: "not-an-email"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["title"])
	assert.Equal(t, "must be a valid ISBN-10 or ISBN-13", details["isbn"])
	assert.Equal(t, "must be a valid email", details["email"])
}

func TestToDetailsValidInput(t *testing.T) {
	err := validate(t, sampleBody{Title: "1984", ISBN: "9780452284234"})
	assert.NoError(t, err)
	assert.Nil(t, ToDetails(nil))
}

func TestToDetailsStringLength(t *testing.T) {
	err := validate(t, sampleBody{Title: "a very long title", ISBN: "9780452284234"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be at most 10 characters long", details["title"])
}

func TestToDetailsUnknownError(t *testing.T) {
	details := ToDetails(assert.AnError)
	assert.Equal(t, "invalid payload", details["payload"])
}
