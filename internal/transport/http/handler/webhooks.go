package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-idv-api/internal/application/webhook"
	"github.com/go-idv-api/internal/domain"
)

// WebhookHandler receives asynchronous notifications from the verification
// service.
type WebhookHandler struct {
	svc webhook.Service
}

func NewWebhookHandler(svc webhook.Service) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

// Receive acknowledges every well-formed notification with {status:
// "received"}, even when dispatch fails internally — the sender only needs to
// know delivery worked, and it retries on 5xx, which would re-run a dispatch
// we already logged as broken.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var payload domain.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	log.Printf("incoming webhook: type=%s code=%s env=%s session=%s",
		payload.WebhookType, payload.WebhookCode, payload.Environment, payload.IdentityVerificationID)
	if err := h.svc.Handle(r.Context(), payload); err != nil {
		log.Printf("webhook dispatch failed: %v", err)
	}
	writeJSON(w, http.StatusOK, StatusEnvelope{Status: "received"})
}
