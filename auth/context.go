// Package auth, as part of the authentication module.
// This file provides the context plumbing between the token middleware and
// downstream handlers: the middleware stores the authenticated user's id in
// the request context, handlers read it back with UserIDFromContext.
package auth

import "context"

// contextKey is a private type for context keys, preventing collisions with
// keys defined by other packages.
type contextKey string

// userIDContextKey is the key under which the authenticated user's id
// (hex ObjectID string) is stored.
const userIDContextKey contextKey = "auth_user_id"

// NewContextWithUserID returns a child context carrying the user id.
func NewContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext extracts the authenticated user's id from the context.
// The second return value reports whether an id was present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
