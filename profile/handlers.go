// Package profile, as part of the profile module.
// HTTP handlers for the /api/profile routes. Public routes (list, by-user,
// github lookup) are mounted without the token middleware; everything else
// requires it and reads the caller's id from the request context.
package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/auth"
	"github.com/user/devconnector-go/validation"
)

// Handlers wraps the profile Service and GithubClient for HTTP.
type Handlers struct {
	service *Service
	github  *GithubClient
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service, github *GithubClient) *Handlers {
	return &Handlers{service: service, github: github}
}

var upsertMessages = validation.Messages{
	"Status": "Status is required",
	"Skills": "Skills is required",
}

var experienceMessages = validation.Messages{
	"Title":   "Title is required",
	"Company": "Company is required",
	"From":    "From date is required",
}

var educationMessages = validation.Messages{
	"School":       "School is required",
	"Degree":       "Degree is required",
	"FieldOfStudy": "Field of study is required",
	"From":         "From date is required",
}

// HandleGetOwn godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} profile.ProfileResponse
// @Failure 400 {object} apperror.ErrorListResponse
// @Failure 401 {object} apperror.MsgResponse
// @Router /api/profile/me [get]
func (h *Handlers) HandleGetOwn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}
		resp, err := h.service.GetOwn(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleUpsert godoc
// @Summary Create or update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body profile.UpsertProfileRequest true "Profile fields"
// @Success 200 {object} profile.ProfileResponse
// @Failure 400 {object} apperror.ErrorListResponse
// @Failure 401 {object} apperror.MsgResponse
// @Router /api/profile [post]
func (h *Handlers) HandleUpsert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}

		var req UpsertProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req, upsertMessages); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.Upsert(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleList godoc
// @Summary List all profiles
// @Tags profile
// @Produce json
// @Success 200 {array} profile.ProfileResponse
// @Router /api/profile [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.service.List(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGetByUserID godoc
// @Summary Get a profile by user id
// @Tags profile
// @Produce json
// @Param user_id path string true "User id"
// @Success 200 {object} profile.ProfileResponse
// @Failure 400 {object} apperror.ErrorListResponse
// @Router /api/profile/user/{user_id} [get]
func (h *Handlers) HandleGetByUserID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.service.GetByUserID(r.Context(), chi.URLParam(r, "user_id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleDeleteAccount godoc
// @Summary Delete the caller's account
// @Description Removes the caller's posts, profile and user record.
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} apperror.MsgResponse
// @Failure 401 {object} apperror.MsgResponse
// @Router /api/profile [delete]
func (h *Handlers) HandleDeleteAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}
		if err := h.service.DeleteAccount(r.Context(), userID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, apperror.MsgResponse{Msg: "User deleted"})
	}
}

// HandleAddExperience godoc
// @Summary Add an experience entry
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body profile.AddExperienceRequest true "Experience entry"
// @Success 200 {object} profile.ProfileResponse
// @Failure 400 {object} apperror.ErrorListResponse
// @Failure 401 {object} apperror.MsgResponse
// @Router /api/profile/experience [put]
func (h *Handlers) HandleAddExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}

		var req AddExperienceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req, experienceMessages); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.AddExperience(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleDeleteExperience godoc
// @Summary Remove an experience entry by id
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Param exp_id path string true "Experience entry id"
// @Success 200 {object} profile.ProfileResponse
// @Failure 401 {object} apperror.MsgResponse
// @Router /api/profile/experience/{exp_id} [delete]
func (h *Handlers) HandleDeleteExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}
		resp, err := h.service.DeleteExperience(r.Context(), userID, chi.URLParam(r, "exp_id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleAddEducation godoc
// @Summary Add an education entry
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body profile.AddEducationRequest true "Education entry"
// @Success 200 {object} profile.ProfileResponse
// @Failure 400 {object} apperror.ErrorListResponse
// @Failure 401 {object} apperror.MsgResponse
// @Router /api/profile/education [put]
func (h *Handlers) HandleAddEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}

		var req AddEducationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req, educationMessages); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.AddEducation(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleDeleteEducation godoc
// @Summary Remove an education entry by id
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Param edu_id path string true "Education entry id"
// @Success 200 {object} profile.ProfileResponse
// @Failure 401 {object} apperror.MsgResponse
// @Router /api/profile/education/{edu_id} [delete]
func (h *Handlers) HandleDeleteEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}
		resp, err := h.service.DeleteEducation(r.Context(), userID, chi.URLParam(r, "edu_id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGithubRepos godoc
// @Summary List a GitHub user's recent repositories
// @Tags profile
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} object
// @Failure 404 {object} apperror.ErrorListResponse
// @Router /api/profile/github/{username} [get]
func (h *Handlers) HandleGithubRepos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repos, err := h.github.GetUserRepos(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, repos)
	}
}
