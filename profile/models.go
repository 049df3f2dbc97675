// Package profile, as part of the profile module.
// This file defines the Profile document and its embedded records. A profile
// is a one-to-one extension of a user; experience and education entries are
// ordered newest-first and addressed by their own ObjectIDs.
package profile

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Social is the nested social-link record. Every field defaults to the empty
// string when omitted on upsert.
type Social struct {
	Youtube   string `bson:"youtube" json:"youtube"`
	Twitter   string `bson:"twitter" json:"twitter"`
	Facebook  string `bson:"facebook" json:"facebook"`
	Linkedin  string `bson:"linkedin" json:"linkedin"`
	Instagram string `bson:"instagram" json:"instagram"`
}

// Experience is a single work-history entry.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location" json:"location"`
	From        time.Time          `bson:"from" json:"from"`
	To          *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description" json:"description"`
}

// Education is a single education-history entry.
type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time          `bson:"from" json:"from"`
	To           *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description" json:"description"`
}

// Profile represents a profile document in the profiles collection.
// UserID references the owning user; API responses replace it with the joined
// Owner record (see ProfileResponse).
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID `bson:"user" json:"-"`
	Company        string             `bson:"company" json:"company"`
	Website        string             `bson:"website" json:"website"`
	Location       string             `bson:"location" json:"location"`
	Status         string             `bson:"status" json:"status"`
	Bio            string             `bson:"bio" json:"bio"`
	GithubUsername string             `bson:"githubusername" json:"githubusername"`
	Skills         []string           `bson:"skills" json:"skills"`
	Social         Social             `bson:"social" json:"social"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	Date           time.Time          `bson:"date" json:"date"`
}

// Owner is the slice of the owning user denormalized into profile responses.
type Owner struct {
	ID     primitive.ObjectID `json:"_id"`
	Name   string             `json:"name"`
	Avatar string             `json:"avatar"`
}

// ProfileResponse is a profile with the owning user's name and avatar joined in.
type ProfileResponse struct {
	Profile
	User Owner `json:"user"`
}
