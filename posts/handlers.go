// Package posts, as part of the posts module.
// HTTP handlers for the /api/posts routes. Every route here is private; the
// token middleware runs ahead of all of them, so a missing context user id
// indicates a wiring problem rather than a normal client error.
package posts

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/auth"
	"github.com/user/devconnector-go/validation"
)

// Handlers wraps the posts Service to provide HTTP handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

var textMessages = validation.Messages{
	"Text": "Text is required",
}

// HandleCreate godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body posts.CreatePostRequest true "Post text"
// @Success 201 {object} posts.Post
// @Failure 400 {object} apperror.ErrorListResponse
// @Failure 401 {object} apperror.MsgResponse
// @Router /api/posts [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req, textMessages); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		post, err := h.service.Create(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, post)
	}
}

// HandleList godoc
// @Summary List all posts, newest first
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} posts.Post
// @Failure 401 {object} apperror.MsgResponse
// @Router /api/posts [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.service.List(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, result)
	}
}

// HandleGet godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post id"
// @Success 200 {object} posts.Post
// @Failure 401 {object} apperror.MsgResponse
// @Failure 404 {object} apperror.ErrorListResponse
// @Router /api/posts/{id} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, post)
	}
}

// HandleDelete godoc
// @Summary Delete a post (owner only)
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post id"
// @Success 200 {object} apperror.MsgResponse
// @Failure 401 {object} apperror.ErrorListResponse
// @Failure 404 {object} apperror.ErrorListResponse
// @Router /api/posts/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}
		if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, apperror.MsgResponse{Msg: "Post removed"})
	}
}

// HandleLike godoc
// @Summary Like a post
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post id"
// @Success 200 {array} posts.Like
// @Failure 400 {object} apperror.ErrorListResponse
// @Failure 401 {object} apperror.MsgResponse
// @Failure 404 {object} apperror.ErrorListResponse
// @Router /api/posts/like/{id} [put]
func (h *Handlers) HandleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}
		likes, err := h.service.Like(r.Context(), chi.URLParam(r, "id"), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, likes)
	}
}

// HandleUnlike godoc
// @Summary Remove the caller's like from a post
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post id"
// @Success 200 {array} posts.Like
// @Failure 400 {object} apperror.ErrorListResponse
// @Failure 401 {object} apperror.MsgResponse
// @Failure 404 {object} apperror.ErrorListResponse
// @Router /api/posts/unlike/{id} [put]
func (h *Handlers) HandleUnlike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}
		likes, err := h.service.Unlike(r.Context(), chi.URLParam(r, "id"), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, likes)
	}
}

// HandleAddComment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post id"
// @Param body body posts.AddCommentRequest true "Comment text"
// @Success 200 {array} posts.Comment
// @Failure 400 {object} apperror.ErrorListResponse
// @Failure 401 {object} apperror.MsgResponse
// @Failure 404 {object} apperror.ErrorListResponse
// @Router /api/posts/comment/{id} [put]
func (h *Handlers) HandleAddComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}

		var req AddCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req, textMessages); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		comments, err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, comments)
	}
}

// HandleDeleteComment godoc
// @Summary Delete a comment (author only)
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post id"
// @Param comment_id path string true "Comment id"
// @Success 200 {array} posts.Comment
// @Failure 401 {object} apperror.ErrorListResponse
// @Failure 404 {object} apperror.ErrorListResponse
// @Router /api/posts/comment/{id}/{comment_id} [delete]
func (h *Handlers) HandleDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}
		comments, err := h.service.DeleteComment(
			r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "comment_id"), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, comments)
	}
}
