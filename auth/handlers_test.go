package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	msgs := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		msgs = append(msgs, e.Msg)
	}
	return msgs
}

func TestHandleRegisterValidation(t *testing.T) {
	h := NewHandlers(nil)

	rec := postJSON(h.HandleRegister(), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{
		"Name is required",
		"Please include a valid email",
		"Please enter a password with 6 or more characters",
	}, decodeErrors(t, rec))

	rec = postJSON(h.HandleRegister(), `{"name":"Ada","email":"not-an-email","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{
		"Please include a valid email",
		"Please enter a password with 6 or more characters",
	}, decodeErrors(t, rec))
}

func TestHandleLoginValidation(t *testing.T) {
	h := NewHandlers(nil)

	rec := postJSON(h.HandleLogin(), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{
		"Please include a valid email",
		"Password is required",
	}, decodeErrors(t, rec))
}

func TestHandleRegisterMalformedBody(t *testing.T) {
	h := NewHandlers(nil)

	rec := postJSON(h.HandleRegister(), `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"invalid request body"}, decodeErrors(t, rec))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHandleGetCurrentUserWithoutIdentity(t *testing.T) {
	h := NewHandlers(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	rec := httptest.NewRecorder()
	h.HandleGetCurrentUser()(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", decodeMsg(t, rec))
}
