package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/devconnector-go/config"
)

const testSecret = "test-secret"

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{JWTSecret: testSecret, TokenDuration: time.Hour}
}

// signToken signs a token for userID with the given secret and expiry offset.
func signToken(t *testing.T, secret, userID string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// guarded wraps a probe handler with the middleware and records the user id
// the handler observes in its context.
func guarded(cfg *config.AuthConfig, seenID *string) http.Handler {
	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := UserIDFromContext(r.Context()); ok {
			*seenID = id
		}
		w.WriteHeader(http.StatusOK)
	})
	return JWTMiddleware(cfg)(probe)
}

func doRequest(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Msg
}

func TestJWTMiddlewareMissingToken(t *testing.T) {
	var seenID string
	rec := doRequest(guarded(testAuthConfig(), &seenID), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", decodeMsg(t, rec))
	assert.Empty(t, seenID)
}

func TestJWTMiddlewareMalformedToken(t *testing.T) {
	var seenID string
	rec := doRequest(guarded(testAuthConfig(), &seenID), "not.a.jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", decodeMsg(t, rec))
	assert.Empty(t, seenID)
}

func TestJWTMiddlewareWrongSecret(t *testing.T) {
	var seenID string
	token := signToken(t, "other-secret", "507f1f77bcf86cd799439011", time.Hour)
	rec := doRequest(guarded(testAuthConfig(), &seenID), token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", decodeMsg(t, rec))
	assert.Empty(t, seenID)
}

func TestJWTMiddlewareExpiredToken(t *testing.T) {
	var seenID string
	token := signToken(t, testSecret, "507f1f77bcf86cd799439011", -time.Hour)
	rec := doRequest(guarded(testAuthConfig(), &seenID), token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", decodeMsg(t, rec))
	assert.Empty(t, seenID)
}

func TestJWTMiddlewareEmptyUserID(t *testing.T) {
	var seenID string
	token := signToken(t, testSecret, "", time.Hour)
	rec := doRequest(guarded(testAuthConfig(), &seenID), token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", decodeMsg(t, rec))
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	var seenID string
	token := signToken(t, testSecret, "507f1f77bcf86cd799439011", time.Hour)
	rec := doRequest(guarded(testAuthConfig(), &seenID), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "507f1f77bcf86cd799439011", seenID)
}

func TestUserIDFromContextAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
