// Package posts, as part of the posts module.
// This file is the service layer for the posts feed. Likes and unlikes are
// single conditional updates against the store (the filter carries the
// "not already liked" / "has liked" predicate), so two concurrent likes by
// the same user cannot both succeed and the per-user uniqueness of the likes
// list holds without a read-modify-write cycle.
package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/auth"
	"github.com/user/devconnector-go/db"
)

const postNotFound = "Post not found"

// Service provides post, like and comment management.
type Service struct {
	posts *mongo.Collection
	users *mongo.Collection
}

// NewService creates a new posts Service.
func NewService(database *mongo.Database) *Service {
	return &Service{
		posts: database.Collection(db.PostsCollection),
		users: database.Collection(db.UsersCollection),
	}
}

// parsePostID maps a malformed path id to the same not-found condition a
// missing document produces, naming the offending id. Handled here once so no
// route needs an inline id check.
func parsePostID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.NewNotFoundError(
			fmt.Sprintf("Resource with id '%s' was not found", id), err)
	}
	return oid, nil
}

// callerID parses the authenticated user's id from its context form.
func callerID(userID string) (primitive.ObjectID, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, apperror.NewAuthError("Token is not valid", err)
	}
	return uid, nil
}

// Create stores a new post with the caller's name and avatar copied onto it.
func (s *Service) Create(ctx context.Context, userID string, req CreatePostRequest) (*Post, error) {
	uid, err := callerID(userID)
	if err != nil {
		return nil, err
	}

	var user auth.User
	if err := s.users.FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load post author", err)
	}

	post := &Post{
		ID:       primitive.NewObjectID(),
		Text:     req.Text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		User:     uid,
		Likes:    []Like{},
		Comments: []Comment{},
		Date:     time.Now().UTC(),
	}
	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return post, nil
}

// List returns all posts, newest first.
func (s *Service) List(ctx context.Context) ([]Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	var result []Post
	if err := cursor.All(ctx, &result); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode posts", err)
	}
	if result == nil {
		result = []Post{}
	}
	return result, nil
}

// Get returns a single post by id.
func (s *Service) Get(ctx context.Context, postID string) (*Post, error) {
	pid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	var post Post
	if err := s.posts.FindOne(ctx, bson.M{"_id": pid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError(
				fmt.Sprintf("Resource with id '%s' was not found", postID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return &post, nil
}

// Delete removes a post. Only the post's owner may delete it.
func (s *Service) Delete(ctx context.Context, postID, userID string) error {
	pid, err := parsePostID(postID)
	if err != nil {
		return err
	}
	uid, err := callerID(userID)
	if err != nil {
		return err
	}

	var post Post
	if err := s.posts.FindOne(ctx, bson.M{"_id": pid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperror.NewNotFoundError(postNotFound, nil)
		}
		return apperror.NewDatabaseError("failed to get post", err)
	}
	if post.User != uid {
		return apperror.NewUnauthorizedError("User not authorized", nil)
	}

	if _, err := s.posts.DeleteOne(ctx, bson.M{"_id": pid}); err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	return nil
}

// Like adds the caller to the post's likes, newest first. The update filter
// requires the caller to be absent from the list, making the add-if-absent
// atomic; a second like by the same user fails with 400 "Post already liked".
func (s *Service) Like(ctx context.Context, postID, userID string) ([]Like, error) {
	pid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	uid, err := callerID(userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": pid, "likes.user": bson.M{"$ne": uid}}
	update := bson.M{"$push": bson.M{"likes": bson.M{
		"$each":     bson.A{Like{ID: primitive.NewObjectID(), User: uid}},
		"$position": 0,
	}}}
	result, err := s.posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to like post", err)
	}
	if result.MatchedCount == 0 {
		if exists, err := s.postExists(ctx, pid); err != nil {
			return nil, err
		} else if !exists {
			return nil, apperror.NewNotFoundError(postNotFound, nil)
		}
		return nil, apperror.NewBadRequestError("Post already liked", nil)
	}

	return s.likes(ctx, pid)
}

// Unlike removes the caller from the post's likes. The filter requires the
// caller to be present, so unliking a never-liked post fails with 400
// "Post has not yet been liked".
func (s *Service) Unlike(ctx context.Context, postID, userID string) ([]Like, error) {
	pid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	uid, err := callerID(userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": pid, "likes.user": uid}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": uid}}}
	result, err := s.posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to unlike post", err)
	}
	if result.MatchedCount == 0 {
		if exists, err := s.postExists(ctx, pid); err != nil {
			return nil, err
		} else if !exists {
			return nil, apperror.NewNotFoundError(postNotFound, nil)
		}
		return nil, apperror.NewBadRequestError("Post has not yet been liked", nil)
	}

	return s.likes(ctx, pid)
}

// AddComment prepends a comment with the caller's name and avatar copied in.
func (s *Service) AddComment(ctx context.Context, postID, userID string, req AddCommentRequest) ([]Comment, error) {
	pid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	uid, err := callerID(userID)
	if err != nil {
		return nil, err
	}

	var user auth.User
	if err := s.users.FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load comment author", err)
	}

	comment := Comment{
		ID:     primitive.NewObjectID(),
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		User:   uid,
		Date:   time.Now().UTC(),
	}
	update := bson.M{"$push": bson.M{"comments": bson.M{
		"$each":     bson.A{comment},
		"$position": 0,
	}}}
	result, err := s.posts.UpdateOne(ctx, bson.M{"_id": pid}, update)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to add comment", err)
	}
	if result.MatchedCount == 0 {
		return nil, apperror.NewNotFoundError(postNotFound, nil)
	}

	return s.comments(ctx, pid)
}

// DeleteComment removes a comment by id. Only the comment's author may remove
// it; an unknown comment id is a 404.
func (s *Service) DeleteComment(ctx context.Context, postID, commentID, userID string) ([]Comment, error) {
	pid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	uid, err := callerID(userID)
	if err != nil {
		return nil, err
	}

	var post Post
	if err := s.posts.FindOne(ctx, bson.M{"_id": pid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError(postNotFound, nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}

	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, apperror.NewNotFoundError("Comment not found", err)
	}
	var comment *Comment
	for i := range post.Comments {
		if post.Comments[i].ID == cid {
			comment = &post.Comments[i]
			break
		}
	}
	if comment == nil {
		return nil, apperror.NewNotFoundError("Comment not found", nil)
	}
	if comment.User != uid {
		return nil, apperror.NewUnauthorizedError("User not authorized", nil)
	}

	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": cid}}}
	if _, err := s.posts.UpdateOne(ctx, bson.M{"_id": pid}, update); err != nil {
		return nil, apperror.NewDatabaseError("failed to delete comment", err)
	}

	return s.comments(ctx, pid)
}

func (s *Service) postExists(ctx context.Context, pid primitive.ObjectID) (bool, error) {
	count, err := s.posts.CountDocuments(ctx, bson.M{"_id": pid})
	if err != nil {
		return false, apperror.NewDatabaseError("failed to check post", err)
	}
	return count > 0, nil
}

// likes reloads the post's likes list after a successful mutation. The post
// may have been deleted between the update and the reload; that reads as the
// usual not-found, not a server fault.
func (s *Service) likes(ctx context.Context, pid primitive.ObjectID) ([]Like, error) {
	var post Post
	if err := s.posts.FindOne(ctx, bson.M{"_id": pid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError(postNotFound, nil)
		}
		return nil, apperror.NewDatabaseError("failed to reload post", err)
	}
	if post.Likes == nil {
		post.Likes = []Like{}
	}
	return post.Likes, nil
}

// comments reloads the post's comments list after a successful mutation,
// mapping a concurrently deleted post to the usual not-found.
func (s *Service) comments(ctx context.Context, pid primitive.ObjectID) ([]Comment, error) {
	var post Post
	if err := s.posts.FindOne(ctx, bson.M{"_id": pid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError(postNotFound, nil)
		}
		return nil, apperror.NewDatabaseError("failed to reload post", err)
	}
	if post.Comments == nil {
		post.Comments = []Comment{}
	}
	return post.Comments, nil
}
