package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-idv-api/internal/domain"
)

// ErrorEnvelope is the error response shape shared by every endpoint.
type ErrorEnvelope struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// CreateUserEnvelope wraps the result of creating a user.
type CreateUserEnvelope struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// UserInfoEnvelope wraps the "who is signed in" response. UserInfo is null
// when nobody is.
type UserInfoEnvelope struct {
	UserInfo *domain.BasicUserInfo `json:"userInfo"`
}

// FullInfoEnvelope wraps the complete user record, null when nobody is
// signed in.
type FullInfoEnvelope struct {
	FullInfo *domain.User `json:"fullInfo"`
}

// StatusEnvelope wraps single-status acknowledgements.
type StatusEnvelope struct {
	Status string `json:"status"`
}

type SignInEnvelope struct {
	SignedIn bool `json:"signedIn"`
}

type SignOutEnvelope struct {
	SignedOut bool `json:"signedOut"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorEnvelope{ErrorCode: code, ErrorMessage: msg})
}

// writeServiceError maps a service-layer error onto the wire. External API
// errors keep their original code and message; everything else collapses to
// the generic 500 envelope.
func writeServiceError(w http.ResponseWriter, err error) {
	var extErr *domain.ExternalError
	switch {
	case errors.As(err, &extErr):
		writeError(w, http.StatusInternalServerError, extErr.ErrorCode, extErr.ErrorMessage)
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "OTHER_ERROR", err.Error())
	}
}
