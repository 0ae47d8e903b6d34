package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-idv-api/internal/application/idv"
	"github.com/go-idv-api/internal/domain"
	"github.com/go-idv-api/internal/pkg/validate"
	"github.com/go-idv-api/internal/transport/http/middleware"
)

// IDVHandler handles the verification orchestration and debug endpoints. All
// of them run behind middleware.RequireSession.
type IDVHandler struct {
	svc idv.Service
}

func NewIDVHandler(svc idv.Service) *IDVHandler {
	return &IDVHandler{svc: svc}
}

func (h *IDVHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no user is signed in")
		return
	}
	record, err := h.svc.Prefill(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *IDVHandler) LinkToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no user is signed in")
		return
	}
	token, err := h.svc.CreateLinkToken(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (h *IDVHandler) ShareableURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no user is signed in")
		return
	}
	record, err := h.svc.GenerateShareableURL(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *IDVHandler) ServerSide(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no user is signed in")
		return
	}
	record, err := h.svc.ServerSideVerify(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Complete is called when the widget reports the flow finished; it pulls the
// authoritative result and updates our record.
func (h *IDVHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req domain.SetIDVSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}
	status, err := h.svc.SyncStatus(r.Context(), req.IDVSession)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusEnvelope{Status: status})
}

// SetRecentSession records the session id the widget reported through its
// event callbacks.
func (h *IDVHandler) SetRecentSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no user is signed in")
		return
	}
	var req domain.SetIDVSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.svc.SetRecentSession(r.Context(), userID, req.IDVSession); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusEnvelope{Status: "ok"})
}

// ShowMostRecent is a debug view of the user's latest session record;
// returns an empty object when no session has been started yet.
func (h *IDVHandler) ShowMostRecent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no user is signed in")
		return
	}
	record, err := h.svc.MostRecentSession(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if record == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// ListSessions is a debug view of every verification attempt for the user.
func (h *IDVHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no user is signed in")
		return
	}
	records, err := h.svc.ListSessions(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// PretendWebhook polls the external service the way a webhook delivery would,
// for setups where no webhook endpoint is reachable.
func (h *IDVHandler) PretendWebhook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no user is signed in")
		return
	}
	status, err := h.svc.SyncMostRecent(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusEnvelope{Status: status})
}
