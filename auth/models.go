// Package auth, as part of the authentication module.
// This file defines the User document, the identity record backing
// registration, login and the denormalized name/avatar copies on posts.
package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user document in the users collection.
// The password hash is stored under the `password` field but is never
// serialized to JSON.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"password" json:"-"`
	Avatar         string             `bson:"avatar" json:"avatar"`
	Date           time.Time          `bson:"date" json:"date"`
}
