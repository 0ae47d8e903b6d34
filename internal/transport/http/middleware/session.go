package middleware

import (
	"context"
	"net/http"
)

// SessionCookieName is the HTTP-only cookie carrying the opaque id of the
// signed-in user. There is no credential behind it; this sample's sign-in is
// "pick a user", which keeps the focus on the verification flows.
const SessionCookieName = "signedInUser"

type contextKey string

const userIDKey contextKey = "userID"

// SetSessionCookie marks the given user as signed in.
func SetSessionCookie(w http.ResponseWriter, userID string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    userID,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})
}

// ClearSessionCookie signs the user out.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})
}

// SignedInUser reads the session cookie without requiring it.
func SignedInUser(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// RequireSession rejects requests without a session cookie and injects the
// signed-in user id into the request context. Verification endpoints are
// meaningless without a user, so they all sit behind this.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := SignedInUser(r)
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no user is signed in")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext extracts the signed-in user id set by RequireSession.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}
