// Package auth, as part of the authentication module.
// This file holds the HTTP handlers for the /api/users and /api/auth routes
// along with the shared response-writing helpers the other feature packages
// reuse at their boundary.
package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/validation"
)

// Handlers wraps the AuthService to provide HTTP handlers.
type Handlers struct {
	service *AuthService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

var registerMessages = validation.Messages{
	"Name":     "Name is required",
	"Email":    "Please include a valid email",
	"Password": "Please enter a password with 6 or more characters",
}

var loginMessages = validation.Messages{
	"Email":    "Please include a valid email",
	"Password": "Password is required",
}

// HandleRegister godoc
// @Summary Register a user
// @Description Creates a user with a hashed password and gravatar avatar, then issues a token.
// @Tags users
// @Accept json
// @Produce json
// @Param body body auth.RegisterRequest true "Registration details"
// @Success 200 {object} auth.TokenResponse
// @Failure 400 {object} apperror.ErrorListResponse
// @Failure 500 {object} apperror.ErrorListResponse
// @Router /api/users [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req, registerMessages); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleLogin godoc
// @Summary Authenticate a user
// @Description Verifies email and password and returns a signed token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.TokenResponse
// @Failure 400 {object} apperror.ErrorListResponse
// @Failure 500 {object} apperror.ErrorListResponse
// @Router /api/auth [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req, loginMessages); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGetCurrentUser godoc
// @Summary Get the authenticated user
// @Description Returns the caller's user record, password excluded.
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} auth.User
// @Failure 401 {object} apperror.MsgResponse
// @Failure 500 {object} apperror.ErrorListResponse
// @Router /api/auth [get]
func (h *Handlers) HandleGetCurrentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
			return
		}

		user, err := h.service.GetCurrentUser(r.Context(), userID)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, user)
	}
}

// WriteJSON serializes data to the response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"errors":[{"msg":"failed to encode response"}]}`, http.StatusInternalServerError)
	}
}

// WriteError maps an error to its status code and wire payload. Errors that
// are not *AppError values are treated as internal faults; server-side detail
// is logged here and never leaks to the caller.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, appErr)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
