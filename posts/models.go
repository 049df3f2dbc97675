// Package posts, as part of the posts module.
// This file defines the Post document and its embedded likes and comments.
// Author name and avatar are denormalized onto posts and comments at creation
// time and are not kept in sync with later user changes.
package posts

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like is a single like entry; User is unique within a post's likes list.
type Like struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	User primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is a single embedded comment, newest first in the list.
type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Date   time.Time          `bson:"date" json:"date"`
}

// Post represents a post document in the posts collection.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Text     string             `bson:"text" json:"text"`
	Name     string             `bson:"name" json:"name"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
	Date     time.Time          `bson:"date" json:"date"`
}
