// Package profile, as part of the profile module.
// This file is the service layer: it owns the queries against the profiles
// collection and the join of the owning user's name and avatar into responses.
// The profile upsert is a single atomic findOneAndUpdate keyed on the user id,
// so two concurrent upserts cannot produce two profile documents; the unique
// index on profiles.user backs the same invariant.
package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/db"
)

const noProfileMessage = "There is no profile for this user"

// Service provides profile management backed by the profiles, users and
// posts collections. Posts are touched only by the account cascade delete.
type Service struct {
	profiles *mongo.Collection
	users    *mongo.Collection
	posts    *mongo.Collection
}

// NewService creates a new profile Service.
func NewService(database *mongo.Database) *Service {
	return &Service{
		profiles: database.Collection(db.ProfilesCollection),
		users:    database.Collection(db.UsersCollection),
		posts:    database.Collection(db.PostsCollection),
	}
}

// callerID parses the authenticated user's id from its context form.
// The id came out of a verified token, so a malformed value is a token problem.
func callerID(userID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, apperror.NewAuthError("Token is not valid", err)
	}
	return id, nil
}

// GetOwn returns the caller's profile with the owner joined in, or 400 when
// no profile exists yet.
func (s *Service) GetOwn(ctx context.Context, userID string) (*ProfileResponse, error) {
	uid, err := callerID(userID)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, uid, noProfileMessage)
}

// GetByUserID returns the profile of the given user. A missing profile and a
// malformed user id are the same client error.
func (s *Service) GetByUserID(ctx context.Context, userID string) (*ProfileResponse, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.NewBadRequestError("Profile not found", err)
	}
	return s.findOne(ctx, uid, "Profile not found")
}

// List returns all profiles with their owners joined in.
func (s *Service) List(ctx context.Context) ([]ProfileResponse, error) {
	cursor, err := s.profiles.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list profiles", err)
	}
	var profiles []Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode profiles", err)
	}
	return s.joinOwners(ctx, profiles)
}

// Upsert creates the caller's profile or updates it in place. Optional text
// fields and each social sub-field default to the empty string; the skills
// string is split on commas into an ordered, trimmed list.
func (s *Service) Upsert(ctx context.Context, userID string, req UpsertProfileRequest) (*ProfileResponse, error) {
	uid, err := callerID(userID)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"company":        req.Company,
			"website":        req.Website,
			"location":       req.Location,
			"bio":            req.Bio,
			"status":         req.Status,
			"githubusername": req.GithubUsername,
			"skills":         splitSkills(req.Skills),
			"social": Social{
				Youtube:   req.Youtube,
				Twitter:   req.Twitter,
				Facebook:  req.Facebook,
				Linkedin:  req.Linkedin,
				Instagram: req.Instagram,
			},
		},
		"$setOnInsert": bson.M{
			"experience": []Experience{},
			"education":  []Education{},
			"date":       time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated Profile
	if err := s.profiles.FindOneAndUpdate(ctx, bson.M{"user": uid}, update, opts).Decode(&updated); err != nil {
		return nil, apperror.NewDatabaseError("failed to upsert profile", err)
	}
	return s.joinOwner(ctx, updated)
}

// AddExperience prepends a work-history entry to the caller's profile.
func (s *Service) AddExperience(ctx context.Context, userID string, req AddExperienceRequest) (*ProfileResponse, error) {
	entry := Experience{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	return s.prepend(ctx, userID, "experience", entry)
}

// DeleteExperience removes a work-history entry by id. An id that matches no
// entry, including a malformed one, is a silent no-op.
func (s *Service) DeleteExperience(ctx context.Context, userID, entryID string) (*ProfileResponse, error) {
	return s.removeEntry(ctx, userID, "experience", entryID)
}

// AddEducation prepends an education entry to the caller's profile.
func (s *Service) AddEducation(ctx context.Context, userID string, req AddEducationRequest) (*ProfileResponse, error) {
	entry := Education{
		ID:           primitive.NewObjectID(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	return s.prepend(ctx, userID, "education", entry)
}

// DeleteEducation removes an education entry by id, silent no-op when unmatched.
func (s *Service) DeleteEducation(ctx context.Context, userID, entryID string) (*ProfileResponse, error) {
	return s.removeEntry(ctx, userID, "education", entryID)
}

// DeleteAccount removes the caller's posts, profile and user document.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	uid, err := callerID(userID)
	if err != nil {
		return err
	}

	if _, err := s.posts.DeleteMany(ctx, bson.M{"user": uid}); err != nil {
		return apperror.NewDatabaseError("failed to delete posts", err)
	}
	if _, err := s.profiles.DeleteOne(ctx, bson.M{"user": uid}); err != nil {
		return apperror.NewDatabaseError("failed to delete profile", err)
	}
	if _, err := s.users.DeleteOne(ctx, bson.M{"_id": uid}); err != nil {
		return apperror.NewDatabaseError("failed to delete user", err)
	}
	return nil
}

// prepend pushes an entry to the front of the named list field.
func (s *Service) prepend(ctx context.Context, userID, field string, entry interface{}) (*ProfileResponse, error) {
	uid, err := callerID(userID)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$push": bson.M{
			field: bson.M{
				"$each":     bson.A{entry},
				"$position": 0,
			},
		},
	}
	result, err := s.profiles.UpdateOne(ctx, bson.M{"user": uid}, update)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to add "+field+" entry", err)
	}
	if result.MatchedCount == 0 {
		return nil, apperror.NewBadRequestError(noProfileMessage, nil)
	}
	return s.findOne(ctx, uid, noProfileMessage)
}

// removeEntry pulls the entry with the given id out of the named list field.
func (s *Service) removeEntry(ctx context.Context, userID, field, entryID string) (*ProfileResponse, error) {
	uid, err := callerID(userID)
	if err != nil {
		return nil, err
	}

	if eid, parseErr := primitive.ObjectIDFromHex(entryID); parseErr == nil {
		update := bson.M{"$pull": bson.M{field: bson.M{"_id": eid}}}
		if _, err := s.profiles.UpdateOne(ctx, bson.M{"user": uid}, update); err != nil {
			return nil, apperror.NewDatabaseError("failed to remove "+field+" entry", err)
		}
	}
	// A malformed or unmatched entry id leaves the profile unchanged.
	return s.findOne(ctx, uid, noProfileMessage)
}

// findOne loads a single profile by owner and joins the owner in, mapping a
// missing document to a 400 with the given message.
func (s *Service) findOne(ctx context.Context, uid primitive.ObjectID, missingMessage string) (*ProfileResponse, error) {
	var p Profile
	if err := s.profiles.FindOne(ctx, bson.M{"user": uid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewBadRequestError(missingMessage, nil)
		}
		return nil, apperror.NewDatabaseError("failed to get profile", err)
	}
	return s.joinOwner(ctx, p)
}

// joinOwner resolves the owning user's name and avatar for a single profile.
func (s *Service) joinOwner(ctx context.Context, p Profile) (*ProfileResponse, error) {
	responses, err := s.joinOwners(ctx, []Profile{p})
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		// The owner vanished between reads; treat the profile as gone too.
		return nil, apperror.NewBadRequestError("Profile not found", nil)
	}
	return &responses[0], nil
}

// joinOwners resolves owner name/avatar for a batch of profiles with a single
// $in query. Profiles whose owner no longer exists are dropped.
func (s *Service) joinOwners(ctx context.Context, profiles []Profile) ([]ProfileResponse, error) {
	if len(profiles) == 0 {
		return []ProfileResponse{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}

	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load profile owners", err)
	}

	type ownerDoc struct {
		ID     primitive.ObjectID `bson:"_id"`
		Name   string             `bson:"name"`
		Avatar string             `bson:"avatar"`
	}
	var owners []ownerDoc
	if err := cursor.All(ctx, &owners); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode profile owners", err)
	}

	byID := make(map[primitive.ObjectID]ownerDoc, len(owners))
	for _, o := range owners {
		byID[o.ID] = o
	}

	responses := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		owner, ok := byID[p.UserID]
		if !ok {
			continue
		}
		responses = append(responses, ProfileResponse{
			Profile: p,
			User:    Owner{ID: owner.ID, Name: owner.Name, Avatar: owner.Avatar},
		})
	}
	return responses, nil
}

// splitSkills turns the delimited skills string into an ordered list of
// trimmed, non-empty entries.
func splitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
