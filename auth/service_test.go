package auth

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/devconnector-go/apperror"
)

// testAuthService connects to the instance named by TEST_MONGO_URI and hands
// back an AuthService over a throwaway database, dropped when the test ends.
func testAuthService(t *testing.T) *AuthService {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	database := client.Database(fmt.Sprintf("devconnector_test_%s", primitive.NewObjectID().Hex()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = database.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return NewAuthService(database, *testAuthConfig())
}

// parseUserID verifies the token against the test secret and returns the
// embedded user id.
func parseUserID(t *testing.T, tokenString string) string {
	t.Helper()
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	return claims.UserID
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	s := testAuthService(t)
	ctx := context.Background()

	resp, err := s.Register(ctx, RegisterRequest{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID := parseUserID(t, resp.Token)
	user, err := s.GetCurrentUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	// Emails are stored lowercased.
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEmpty(t, user.Avatar)
	assert.NotEqual(t, "hunter22", user.HashedPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := testAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = s.Register(ctx, RegisterRequest{Name: "Imposter", Email: "ADA@example.com", Password: "qwerty12"})
	require.Error(t, err)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.BadRequestError, appErr.Type)
	assert.Equal(t, "User already exists", appErr.Message)
}

func TestLogin(t *testing.T) {
	s := testAuthService(t)
	ctx := context.Background()

	registered, err := s.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	logged, err := s.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, parseUserID(t, registered.Token), parseUserID(t, logged.Token))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := testAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	// Wrong password and unknown email answer identically.
	for _, req := range []LoginRequest{
		{Email: "ada@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "hunter22"},
	} {
		_, err := s.Login(ctx, req)
		require.Error(t, err)
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.BadRequestError, appErr.Type)
		assert.Equal(t, "Invalid Credentials", appErr.Message)
	}
}

func TestGetCurrentUserErrors(t *testing.T) {
	s := testAuthService(t)
	ctx := context.Background()

	_, err := s.GetCurrentUser(ctx, "not-a-hex-id")
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))

	_, err = s.GetCurrentUser(ctx, primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
