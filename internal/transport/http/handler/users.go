package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-idv-api/internal/application/user"
	"github.com/go-idv-api/internal/domain"
	"github.com/go-idv-api/internal/pkg/validate"
	"github.com/go-idv-api/internal/transport/http/middleware"
)

// UserHandler handles sign-up, sign-in and user info endpoints.
type UserHandler struct {
	svc          user.Service
	cookieMaxAge int
}

func NewUserHandler(svc user.Service, cookieMaxAge int) *UserHandler {
	return &UserHandler{svc: svc, cookieMaxAge: cookieMaxAge}
}

// Create makes a new user record and signs them in immediately.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}
	u, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.SetSessionCookie(w, u.UserID, h.cookieMaxAge)
	writeJSON(w, http.StatusCreated, CreateUserEnvelope{UserID: u.UserID, Username: u.Username})
}

// SignIn switches the session to the requested user id. No credential check;
// that simplification is the point of this sample.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req domain.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}
	middleware.SetSessionCookie(w, req.UserID, h.cookieMaxAge)
	writeJSON(w, http.StatusOK, SignInEnvelope{SignedIn: true})
}

func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, SignOutEnvelope{SignedOut: true})
}

// List returns id and username for every user, for the sign-in picker.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// BasicInfo reports who is signed in. A cookie pointing at an unknown user —
// usually leftover cookies after the database was wiped — is cleared and
// treated as "no session" instead of failing.
func (h *UserHandler) BasicInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.SignedInUser(r)
	if !ok {
		writeJSON(w, http.StatusOK, UserInfoEnvelope{UserInfo: nil})
		return
	}
	info, err := h.svc.GetBasicInfo(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			middleware.ClearSessionCookie(w)
			writeJSON(w, http.StatusOK, UserInfoEnvelope{UserInfo: nil})
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserInfoEnvelope{UserInfo: info})
}

// FullInfo returns the complete row, including verification status. A real
// application would send the client a subset of this.
func (h *UserHandler) FullInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.SignedInUser(r)
	if !ok {
		writeJSON(w, http.StatusOK, FullInfoEnvelope{FullInfo: nil})
		return
	}
	u, err := h.svc.GetFullInfo(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, FullInfoEnvelope{FullInfo: nil})
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FullInfoEnvelope{FullInfo: u})
}
