// Package posts, as part of the posts module.
// Request payloads for post and comment creation.
package posts

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Text string `json:"text" validate:"required" example:"hello"`
}

// AddCommentRequest is the payload for commenting on a post.
type AddCommentRequest struct {
	Text string `json:"text" validate:"required" example:"nice post"`
}
