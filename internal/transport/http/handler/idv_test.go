package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-idv-api/internal/domain"
	"github.com/go-idv-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIDVService struct {
	mock.Mock
}

func (m *mockIDVService) Prefill(ctx context.Context, userID string) (*domain.IdentityVerification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IdentityVerification), args.Error(1)
}

func (m *mockIDVService) GenerateShareableURL(ctx context.Context, userID string) (*domain.IdentityVerification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IdentityVerification), args.Error(1)
}

func (m *mockIDVService) ServerSideVerify(ctx context.Context, userID string) (*domain.IdentityVerification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IdentityVerification), args.Error(1)
}

func (m *mockIDVService) CreateLinkToken(ctx context.Context, userID string) (*domain.LinkToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkToken), args.Error(1)
}

func (m *mockIDVService) SetRecentSession(ctx context.Context, userID, sessionID string) error {
	return m.Called(ctx, userID, sessionID).Error(0)
}

func (m *mockIDVService) SyncStatus(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *mockIDVService) MostRecentSession(ctx context.Context, userID string) (*domain.IdentityVerification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IdentityVerification), args.Error(1)
}

func (m *mockIDVService) ListSessions(ctx context.Context, userID string) ([]domain.IdentityVerification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IdentityVerification), args.Error(1)
}

func (m *mockIDVService) SyncMostRecent(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// serveAuthed runs the handler behind the session middleware with userID
// signed in, the way it is mounted in the router.
func serveAuthed(h http.HandlerFunc, r *http.Request, userID string) *httptest.ResponseRecorder {
	r.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: userID})
	rr := httptest.NewRecorder()
	middleware.RequireSession(h).ServeHTTP(rr, r)
	return rr
}

func TestPrefill_RequiresSession(t *testing.T) {
	svc := new(mockIDVService)
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/prefill_idv_data", nil)
	rr := httptest.NewRecorder()
	middleware.RequireSession(http.HandlerFunc(h.Prefill)).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertNotCalled(t, "Prefill")
}

func TestPrefill_ReturnsSessionRecord(t *testing.T) {
	svc := new(mockIDVService)
	svc.On("Prefill", mock.Anything, "u1").
		Return(&domain.IdentityVerification{ID: "idv-1", ClientUserID: "u1", Status: "active"}, nil)
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/prefill_idv_data", nil)
	rr := serveAuthed(h.Prefill, r, "u1")

	assert.Equal(t, http.StatusOK, rr.Code)
	var body domain.IdentityVerification
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "idv-1", body.ID)
	svc.AssertExpectations(t)
}

func TestPrefill_ExternalErrorKeepsItsCode(t *testing.T) {
	svc := new(mockIDVService)
	svc.On("Prefill", mock.Anything, "u1").Return(nil, &domain.ExternalError{
		StatusCode:   400,
		ErrorType:    "INVALID_REQUEST",
		ErrorCode:    "INVALID_FIELD",
		ErrorMessage: "template_id is invalid",
	})
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/prefill_idv_data", nil)
	rr := serveAuthed(h.Prefill, r, "u1")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var body ErrorEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "INVALID_FIELD", body.ErrorCode)
	assert.Equal(t, "template_id is invalid", body.ErrorMessage)
}

func TestLinkToken(t *testing.T) {
	svc := new(mockIDVService)
	svc.On("CreateLinkToken", mock.Anything, "u1").
		Return(&domain.LinkToken{LinkToken: "link-sandbox-abc"}, nil)
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/generate_link_token_for_idv", nil)
	rr := serveAuthed(h.LinkToken, r, "u1")

	assert.Equal(t, http.StatusOK, rr.Code)
	var body domain.LinkToken
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "link-sandbox-abc", body.LinkToken)
}

func TestComplete_SyncsReportedSession(t *testing.T) {
	svc := new(mockIDVService)
	svc.On("SyncStatus", mock.Anything, "idv-1").Return("success", nil)
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/idv_complete",
		strings.NewReader(`{"idvSession":"idv-1"}`))
	rr := serveAuthed(h.Complete, r, "u1")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"success"}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestComplete_MissingSessionID(t *testing.T) {
	svc := new(mockIDVService)
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/idv_complete",
		strings.NewReader(`{}`))
	rr := serveAuthed(h.Complete, r, "u1")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "SyncStatus")
}

func TestSetRecentSession(t *testing.T) {
	svc := new(mockIDVService)
	svc.On("SetRecentSession", mock.Anything, "u1", "idv-1").Return(nil)
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/set_recent_idv_session",
		strings.NewReader(`{"idvSession":"idv-1"}`))
	rr := serveAuthed(h.SetRecentSession, r, "u1")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestShowMostRecent_NoSessionsYet(t *testing.T) {
	svc := new(mockIDVService)
	svc.On("MostRecentSession", mock.Anything, "u1").Return(nil, nil)
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/server/debug/show_most_recent_idv", nil)
	rr := serveAuthed(h.ShowMostRecent, r, "u1")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{}`, rr.Body.String())
}

func TestListSessions(t *testing.T) {
	svc := new(mockIDVService)
	svc.On("ListSessions", mock.Anything, "u1").Return([]domain.IdentityVerification{
		{ID: "idv-1", Status: "success"},
		{ID: "idv-2", Status: "failed"},
	}, nil)
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/server/debug/fetch_user_idv_list", nil)
	rr := serveAuthed(h.ListSessions, r, "u1")

	assert.Equal(t, http.StatusOK, rr.Code)
	var body []domain.IdentityVerification
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Len(t, body, 2)
}

func TestPretendWebhook(t *testing.T) {
	svc := new(mockIDVService)
	svc.On("SyncMostRecent", mock.Anything, "u1").Return("success", nil)
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/debug/pretend_we_received_webhook", nil)
	rr := serveAuthed(h.PretendWebhook, r, "u1")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"success"}`, rr.Body.String())
}

func TestPretendWebhook_NoSessionOnRecord(t *testing.T) {
	svc := new(mockIDVService)
	svc.On("SyncMostRecent", mock.Anything, "u1").Return("", domain.ErrNotFound)
	h := NewIDVHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/server/debug/pretend_we_received_webhook", nil)
	rr := serveAuthed(h.PretendWebhook, r, "u1")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var body ErrorEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.ErrorCode)
}
