// Package webhook dispatches asynchronous notifications from the
// verification service. Only identity-verification status updates mutate the
// store; everything else is logged and dropped.
package webhook

import (
	"context"
	"log"

	"github.com/go-idv-api/internal/domain"
)

type Service interface {
	Handle(ctx context.Context, payload domain.WebhookPayload) error
}

type statusSyncer interface {
	SyncStatus(ctx context.Context, sessionID string) (string, error)
}

type service struct {
	syncer      statusSyncer
	environment string
}

func NewService(syncer statusSyncer, environment string) Service {
	return &service{syncer: syncer, environment: environment}
}

func (s *service) Handle(ctx context.Context, payload domain.WebhookPayload) error {
	switch payload.WebhookType {
	case domain.WebhookTypeIdentityVerification:
		return s.handleIdentityVerification(ctx, payload)
	default:
		log.Printf("can't handle webhook product %s", payload.WebhookType)
		return nil
	}
}

func (s *service) handleIdentityVerification(ctx context.Context, payload domain.WebhookPayload) error {
	// Discard webhooks from other environments so a sandbox notification
	// never touches production rows, and vice versa.
	if payload.Environment != s.environment {
		log.Printf("discarding webhook for environment %s", payload.Environment)
		return nil
	}
	switch payload.WebhookCode {
	case domain.WebhookCodeStepUpdated:
		log.Printf("a step has been updated for verification session %s", payload.IdentityVerificationID)
		return nil
	case domain.WebhookCodeStatusUpdated:
		log.Printf("status updated for verification session %s, updating our database", payload.IdentityVerificationID)
		status, err := s.syncer.SyncStatus(ctx, payload.IdentityVerificationID)
		if err != nil {
			return err
		}
		log.Printf("session %s now has status %s", payload.IdentityVerificationID, status)
		return nil
	default:
		log.Printf("not doing anything with the %s webhook", payload.WebhookCode)
		return nil
	}
}
