// Package auth is responsible for authentication: user registration, login,
// token issuance and verification. Registration creates the user and issues a
// token in one step, mirroring the login contract, so a fresh account is
// immediately usable.
package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/config"
	"github.com/user/devconnector-go/db"
)

// invalidCredentials is the single message for both unknown-email and
// wrong-password login failures, so callers cannot enumerate accounts.
const invalidCredentials = "Invalid Credentials"

// AuthService provides registration, login and token issuance.
type AuthService struct {
	users      *mongo.Collection
	authConfig config.AuthConfig
}

// NewAuthService creates a new AuthService backed by the given database handle.
func NewAuthService(database *mongo.Database, authConfig config.AuthConfig) *AuthService {
	return &AuthService{
		users:      database.Collection(db.UsersCollection),
		authConfig: authConfig,
	}
}

// Register creates a new user and returns a signed token for it.
// A registration against an email that already has an account fails with 400
// "User already exists"; the unique index on users.email backs the same
// invariant against concurrent registrations.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	email := strings.ToLower(req.Email)

	count, err := s.users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to check existing user", err)
	}
	if count > 0 {
		return nil, apperror.NewBadRequestError("User already exists", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		ID:             primitive.NewObjectID(),
		Name:           req.Name,
		Email:          email,
		HashedPassword: string(hashedPassword),
		Avatar:         GravatarURL(email),
		Date:           time.Now().UTC(),
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		// The pre-check and the insert race under concurrent registrations;
		// the unique index turns the loser into the same client error.
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.NewBadRequestError("User already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	return s.issueToken(user.ID)
}

// Login authenticates a user by email and password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var user User
	err := s.users.FindOne(ctx, bson.M{"email": strings.ToLower(req.Email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewBadRequestError(invalidCredentials, nil)
		}
		log.Printf("database error during login lookup: %v", err)
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewBadRequestError(invalidCredentials, nil)
	}

	return s.issueToken(user.ID)
}

// GetCurrentUser returns the user record for the identity embedded in the
// caller's token, password excluded by the model's JSON tags.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.NewAuthError("Token is not valid", err)
	}

	var user User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &user, nil
}

// issueToken signs a token embedding the user id with the configured expiry.
func (s *AuthService) issueToken(userID primitive.ObjectID) (*TokenResponse, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.authConfig.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return nil, apperror.NewInternalError("failed to sign token", err)
	}
	return &TokenResponse{Token: tokenString}, nil
}
