// Package auth, as part of the authentication module.
// This file defines the token-verification middleware guarding the private
// routes. The token travels in the custom `x-auth-token` header, not a
// standard Bearer scheme. Failure is terminal for the request: there is no
// retry and no refresh.
package auth

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/config"
)

// TokenHeader is the request header carrying the signed token.
const TokenHeader = "x-auth-token"

// Claims is the JWT payload: the user's id plus the registered expiry claims.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTMiddleware verifies the x-auth-token header against the shared secret
// and stores the embedded user id in the request context for downstream
// handlers. Requests without a token are rejected with 401
// "No token, authorization denied"; tampered or expired tokens with 401
// "Token is not valid".
func JWTMiddleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid || claims.UserID == "" {
				WriteError(w, r, apperror.NewAuthError("Token is not valid", err))
				return
			}

			ctx := NewContextWithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
