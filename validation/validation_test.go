package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/devconnector-go/apperror"
)

type signupForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

var signupMessages = Messages{
	"Name":     "Name is required",
	"Email":    "Please include a valid email",
	"Password": "Please enter a password with 6 or more characters",
}

func fieldMessages(t *testing.T, err error) []string {
	t.Helper()
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.True(t, apperror.IsValidationError(err))
	msgs := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		msgs = append(msgs, f.Msg)
	}
	return msgs
}

func TestStructPasses(t *testing.T) {
	err := Struct(signupForm{Name: "Ada", Email: "ada@example.com", Password: "hunter22"}, signupMessages)
	assert.NoError(t, err)
}

func TestStructReportsEveryFailedField(t *testing.T) {
	err := Struct(signupForm{}, signupMessages)
	require.Error(t, err)

	assert.Equal(t, []string{
		"Name is required",
		"Please include a valid email",
		"Please enter a password with 6 or more characters",
	}, fieldMessages(t, err))
}

func TestStructFormatRules(t *testing.T) {
	err := Struct(signupForm{Name: "Ada", Email: "not-an-email", Password: "short"}, signupMessages)
	require.Error(t, err)

	assert.Equal(t, []string{
		"Please include a valid email",
		"Please enter a password with 6 or more characters",
	}, fieldMessages(t, err))
}

func TestStructFallbackMessage(t *testing.T) {
	err := Struct(signupForm{Name: "Ada", Email: "ada@example.com"}, Messages{})
	require.Error(t, err)

	assert.Equal(t, []string{"Password is invalid"}, fieldMessages(t, err))
}

func TestStructRejectsNonStruct(t *testing.T) {
	err := Struct("not a struct", nil)
	require.Error(t, err)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.InternalError, appErr.Type)
}
