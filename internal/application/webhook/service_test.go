package webhook

import (
	"context"
	"errors"
	"testing"

	"github.com/go-idv-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSyncer struct{ mock.Mock }

func (m *mockSyncer) SyncStatus(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func payload(webhookType, code, env string) domain.WebhookPayload {
	return domain.WebhookPayload{
		WebhookType:            webhookType,
		WebhookCode:            code,
		Environment:            env,
		IdentityVerificationID: "idv-1",
	}
}

func TestHandle_StatusUpdated_SyncsExactlyOnce(t *testing.T) {
	syncer := &mockSyncer{}
	syncer.On("SyncStatus", mock.Anything, "idv-1").Return("success", nil).Once()

	svc := NewService(syncer, "sandbox")
	err := svc.Handle(context.Background(), payload(
		domain.WebhookTypeIdentityVerification, domain.WebhookCodeStatusUpdated, "sandbox"))

	require.NoError(t, err)
	syncer.AssertExpectations(t)
	syncer.AssertNumberOfCalls(t, "SyncStatus", 1)
}

func TestHandle_EnvironmentMismatch_NoMutation(t *testing.T) {
	syncer := &mockSyncer{}

	svc := NewService(syncer, "sandbox")
	err := svc.Handle(context.Background(), payload(
		domain.WebhookTypeIdentityVerification, domain.WebhookCodeStatusUpdated, "production"))

	require.NoError(t, err)
	syncer.AssertNotCalled(t, "SyncStatus", mock.Anything, mock.Anything)
}

func TestHandle_StepUpdated_LogOnly(t *testing.T) {
	syncer := &mockSyncer{}

	svc := NewService(syncer, "sandbox")
	err := svc.Handle(context.Background(), payload(
		domain.WebhookTypeIdentityVerification, domain.WebhookCodeStepUpdated, "sandbox"))

	require.NoError(t, err)
	syncer.AssertNotCalled(t, "SyncStatus", mock.Anything, mock.Anything)
}

func TestHandle_UnknownProduct_Ignored(t *testing.T) {
	syncer := &mockSyncer{}

	svc := NewService(syncer, "sandbox")
	err := svc.Handle(context.Background(), payload("TRANSACTIONS", "SYNC_UPDATES_AVAILABLE", "sandbox"))

	require.NoError(t, err)
	syncer.AssertNotCalled(t, "SyncStatus", mock.Anything, mock.Anything)
}

func TestHandle_UnknownCode_Ignored(t *testing.T) {
	syncer := &mockSyncer{}

	svc := NewService(syncer, "sandbox")
	err := svc.Handle(context.Background(), payload(
		domain.WebhookTypeIdentityVerification, "RETRIED", "sandbox"))

	require.NoError(t, err)
	syncer.AssertNotCalled(t, "SyncStatus", mock.Anything, mock.Anything)
}

func TestHandle_SyncErrorPropagates(t *testing.T) {
	syncer := &mockSyncer{}
	syncErr := errors.New("store unavailable")
	syncer.On("SyncStatus", mock.Anything, "idv-1").Return("", syncErr)

	svc := NewService(syncer, "sandbox")
	err := svc.Handle(context.Background(), payload(
		domain.WebhookTypeIdentityVerification, domain.WebhookCodeStatusUpdated, "sandbox"))

	assert.Equal(t, syncErr, err)
}
