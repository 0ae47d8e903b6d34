package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-idv-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockWebhookService struct {
	mock.Mock
}

func (m *mockWebhookService) Handle(ctx context.Context, payload domain.WebhookPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func TestReceiveWebhook_AcknowledgesAndDispatches(t *testing.T) {
	svc := new(mockWebhookService)
	svc.On("Handle", mock.Anything, domain.WebhookPayload{
		WebhookType:            domain.WebhookTypeIdentityVerification,
		WebhookCode:            domain.WebhookCodeStatusUpdated,
		Environment:            "sandbox",
		IdentityVerificationID: "idv-1",
	}).Return(nil)
	h := NewWebhookHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/receive_webhook", strings.NewReader(
		`{"webhook_type":"IDENTITY_VERIFICATION","webhook_code":"STATUS_UPDATED","environment":"sandbox","identity_verification_id":"idv-1"}`))
	rr := httptest.NewRecorder()
	h.Receive(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"received"}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestReceiveWebhook_InvalidBody(t *testing.T) {
	svc := new(mockWebhookService)
	h := NewWebhookHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/receive_webhook", strings.NewReader(`{not json`))
	rr := httptest.NewRecorder()
	h.Receive(rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Handle")
}

func TestReceiveWebhook_DispatchFailureStillAcknowledged(t *testing.T) {
	svc := new(mockWebhookService)
	svc.On("Handle", mock.Anything, mock.Anything).Return(errors.New("sync failed"))
	h := NewWebhookHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/receive_webhook", strings.NewReader(
		`{"webhook_type":"IDENTITY_VERIFICATION","webhook_code":"STATUS_UPDATED","environment":"sandbox","identity_verification_id":"idv-1"}`))
	rr := httptest.NewRecorder()
	h.Receive(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"received"}`, rr.Body.String())
}
