// Package db provides document database connectivity for the application.
// It establishes the MongoDB client at startup and hands out an injectable
// *mongo.Database that services receive through their constructors, rather
// than a package-level singleton. Index creation for the invariants the data
// model relies on (unique user emails) also lives here.
package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/config"
)

// connectTimeout bounds the initial connection and ping at startup.
const connectTimeout = 10 * time.Second

// Collection names used across the application.
const (
	UsersCollection    = "users"
	ProfilesCollection = "profiles"
	PostsCollection    = "posts"
)

// Connect establishes the MongoDB connection and verifies it with a ping.
// The returned handle is shared by all services; the caller owns its
// lifecycle and should call Close on shutdown.
func Connect(cfg *config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to connect to MongoDB", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, apperror.NewDatabaseError("failed to ping MongoDB", err)
	}

	return client.Database(cfg.DBName), nil
}

// Close disconnects the underlying client of the given database handle.
func Close(database *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return database.Client().Disconnect(ctx)
}

// EnsureIndexes creates the indexes the data model depends on:
//
//   - users.email unique, backing the one-account-per-email invariant
//   - profiles.user unique, backing the one-profile-per-user invariant
//   - posts.date descending, serving the newest-first feed listing
func EnsureIndexes(database *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	_, err := database.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return apperror.NewDatabaseError("failed to create users.email index", err)
	}

	_, err = database.Collection(ProfilesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return apperror.NewDatabaseError("failed to create profiles.user index", err)
	}

	_, err = database.Collection(PostsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	if err != nil {
		return apperror.NewDatabaseError("failed to create posts.date index", err)
	}

	return nil
}
