// Package idv orchestrates identity-verification sessions against the
// external verification API and keeps the local user row in sync with the
// externally owned verification state.
package idv

import (
	"context"
	"fmt"
	"log"

	"github.com/go-idv-api/internal/domain"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFirstName            = "first_name"
	fieldLastName             = "last_name"
	fieldPhone                = "phone"
	fieldIsVerified           = "is_verified"
	fieldIDVStatus            = "idv_status"
	fieldMostRecentIDVSession = "most_recent_idv_session"
)

// Sample prefill data. A real integration would pull these from its own
// records; the sample hardcodes a well-known applicant.
var (
	sampleName    = domain.ApplicantName{GivenName: "Leslie", FamilyName: "Knope"}
	sampleAddress = domain.ApplicantAddress{
		Street:     "123 Main St.",
		City:       "Pawnee",
		Region:     "IN",
		PostalCode: "46001",
		Country:    "US",
	}
	sampleDateOfBirth = "1975-01-18"
	samplePhone       = "+12345678909"
	sampleIDNumber    = domain.ApplicantIDNumber{Value: "6789", Type: domain.IDNumberTypeUSSSNLast4}
)

const linkClientName = "Baby You Can Buy My Car"

type Service interface {
	// Prefill opens a verification session seeded with the personal data we
	// already hold, so the user doesn't type it twice.
	Prefill(ctx context.Context, userID string) (*domain.IdentityVerification, error)
	// GenerateShareableURL opens a link-based session the user can complete
	// outside the embedded widget.
	GenerateShareableURL(ctx context.Context, userID string) (*domain.IdentityVerification, error)
	// ServerSideVerify attempts verification with no user interaction, using
	// the data-source-only template and an explicit consent flag.
	ServerSideVerify(ctx context.Context, userID string) (*domain.IdentityVerification, error)
	// CreateLinkToken obtains a widget initialization token for the user.
	CreateLinkToken(ctx context.Context, userID string) (*domain.LinkToken, error)
	// SetRecentSession records a session id reported by the widget callbacks.
	SetRecentSession(ctx context.Context, userID, sessionID string) error
	// SyncStatus is the single synchronization point between the external
	// source of truth and the local store. See implementation notes below.
	SyncStatus(ctx context.Context, sessionID string) (string, error)
	// MostRecentSession fetches the user's latest session record, or nil when
	// the user has never started one.
	MostRecentSession(ctx context.Context, userID string) (*domain.IdentityVerification, error)
	// ListSessions fetches every session for the user under the configured
	// template.
	ListSessions(ctx context.Context, userID string) ([]domain.IdentityVerification, error)
	// SyncMostRecent runs SyncStatus on the user's stored session id; stands
	// in for a webhook when none is wired up.
	SyncMostRecent(ctx context.Context, userID string) (string, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type verificationClient interface {
	CreateIdentityVerification(ctx context.Context, req *domain.CreateIDVRequest) (*domain.IdentityVerification, error)
	GetIdentityVerification(ctx context.Context, sessionID string) (*domain.IdentityVerification, error)
	ListIdentityVerifications(ctx context.Context, clientUserID, templateID string) ([]domain.IdentityVerification, error)
	CreateLinkToken(ctx context.Context, req *domain.LinkTokenRequest) (*domain.LinkToken, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	repo                 userStore
	client               verificationClient
	mailer               mailer // nil when email is disabled
	templateID           string
	dataSourceTemplateID string
}

type ServiceDeps struct {
	UserRepo             userStore
	Client               verificationClient
	Mailer               mailer
	TemplateID           string
	DataSourceTemplateID string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:                 deps.UserRepo,
		client:               deps.Client,
		mailer:               deps.Mailer,
		templateID:           deps.TemplateID,
		dataSourceTemplateID: deps.DataSourceTemplateID,
	}
}

func (s *service) Prefill(ctx context.Context, userID string) (*domain.IdentityVerification, error) {
	record, err := s.client.CreateIdentityVerification(ctx, &domain.CreateIDVRequest{
		IsShareable:  false,
		TemplateID:   s.templateID,
		IsIdempotent: true,
		User: domain.Applicant{
			ClientUserID: userID,
			Name:         &sampleName,
			Address:      &sampleAddress,
			DateOfBirth:  sampleDateOfBirth,
		},
	})
	if err != nil {
		return nil, err
	}
	if err := s.SetRecentSession(ctx, userID, record.ID); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) GenerateShareableURL(ctx context.Context, userID string) (*domain.IdentityVerification, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	record, err := s.client.CreateIdentityVerification(ctx, &domain.CreateIDVRequest{
		IsShareable:  true,
		TemplateID:   s.templateID,
		IsIdempotent: true,
		User: domain.Applicant{
			ClientUserID: userID,
			EmailAddress: u.Email,
		},
	})
	if err != nil {
		return nil, err
	}
	if err := s.SetRecentSession(ctx, userID, record.ID); err != nil {
		return nil, err
	}
	s.emailShareableURL(u, record.ShareableURL)
	return record, nil
}

// emailShareableURL is best effort: a mail failure never fails the request.
func (s *service) emailShareableURL(u *domain.User, url string) {
	if s.mailer == nil || u.Email == "" || url == "" {
		return
	}
	body := fmt.Sprintf("Hi %s,\n\nFinish verifying your identity here:\n%s\n", u.Username, url)
	if err := s.mailer.SendEmail(u.Email, "Verify your identity", body); err != nil {
		log.Printf("could not email shareable url to %s: %v", u.Email, err)
	}
}

func (s *service) ServerSideVerify(ctx context.Context, userID string) (*domain.IdentityVerification, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	record, err := s.client.CreateIdentityVerification(ctx, &domain.CreateIDVRequest{
		IsShareable:  false,
		TemplateID:   s.dataSourceTemplateID,
		IsIdempotent: true,
		GaveConsent:  true,
		User: domain.Applicant{
			ClientUserID: userID,
			EmailAddress: u.Email,
			Name:         &sampleName,
			Address:      &sampleAddress,
			DateOfBirth:  sampleDateOfBirth,
			PhoneNumber:  samplePhone,
			IDNumber:     &sampleIDNumber,
		},
	})
	if err != nil {
		return nil, err
	}
	if err := s.SetRecentSession(ctx, userID, record.ID); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) CreateLinkToken(ctx context.Context, userID string) (*domain.LinkToken, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	req := &domain.LinkTokenRequest{
		ClientName:           linkClientName,
		Language:             "en",
		CountryCodes:         []string{"US"},
		User:                 domain.LinkTokenUser{ClientUserID: userID},
		Products:             []string{"identity_verification"},
		IdentityVerification: &domain.LinkTokenIDVOpts{TemplateID: s.templateID},
	}
	// Always include the email when we have it; the verification service
	// uses it for fraud checks.
	if u.Email != "" {
		req.User.EmailAddress = u.Email
	}
	return s.client.CreateLinkToken(ctx, req)
}

func (s *service) SetRecentSession(ctx context.Context, userID, sessionID string) error {
	return s.repo.Update(ctx, userID, map[string]interface{}{
		fieldMostRecentIDVSession: sessionID,
	})
}

// SyncStatus fetches the authoritative session record and writes the outcome
// back to the user row. The row is keyed by the client_user_id embedded in
// the fetched record, never by the caller's cookie, so a user cannot submit
// someone else's session id and overwrite the wrong record. The write is a
// pure function of the fetched record, which makes the whole operation
// idempotent per session: the polling path and the webhook path can both call
// it without coordinating, and the last writer wins with identical data.
func (s *service) SyncStatus(ctx context.Context, sessionID string) (string, error) {
	record, err := s.client.GetIdentityVerification(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if record.ClientUserID == "" {
		return "", fmt.Errorf("session %s has no client_user_id: %w", sessionID, domain.ErrBadRequest)
	}
	updates := map[string]interface{}{
		fieldIDVStatus:            record.Status,
		fieldMostRecentIDVSession: sessionID,
	}
	if record.Status == domain.IDVStatusSuccess {
		updates[fieldIsVerified] = true
		if record.User != nil {
			if record.User.Name != nil {
				updates[fieldFirstName] = record.User.Name.GivenName
				updates[fieldLastName] = record.User.Name.FamilyName
			}
			updates[fieldPhone] = record.User.PhoneNumber
		}
	} else {
		// Anything but "success" is unverified. A later failed session
		// supersedes an earlier success.
		updates[fieldIsVerified] = false
	}
	if err := s.repo.Update(ctx, record.ClientUserID, updates); err != nil {
		return "", err
	}
	return record.Status, nil
}

func (s *service) MostRecentSession(ctx context.Context, userID string) (*domain.IdentityVerification, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.MostRecentIDVSession == "" {
		return nil, nil
	}
	return s.client.GetIdentityVerification(ctx, u.MostRecentIDVSession)
}

func (s *service) ListSessions(ctx context.Context, userID string) ([]domain.IdentityVerification, error) {
	return s.client.ListIdentityVerifications(ctx, userID, s.templateID)
}

func (s *service) SyncMostRecent(ctx context.Context, userID string) (string, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if u.MostRecentIDVSession == "" {
		return "", fmt.Errorf("user %s has no verification session: %w", userID, domain.ErrNotFound)
	}
	return s.SyncStatus(ctx, u.MostRecentIDVSession)
}
