package http

import (
	"context"

	"github.com/go-idv-api/internal/domain"
)

// UserRepository is the minimal interface the routers require from the user
// store.
type UserRepository interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	Scan(ctx context.Context) ([]domain.BasicUserInfo, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// VerificationClient is the minimal interface the routers require from the
// external identity-verification API.
type VerificationClient interface {
	CreateIdentityVerification(ctx context.Context, req *domain.CreateIDVRequest) (*domain.IdentityVerification, error)
	GetIdentityVerification(ctx context.Context, sessionID string) (*domain.IdentityVerification, error)
	ListIdentityVerifications(ctx context.Context, clientUserID, templateID string) ([]domain.IdentityVerification, error)
	CreateLinkToken(ctx context.Context, req *domain.LinkTokenRequest) (*domain.LinkToken, error)
}

// Mailer sends emails; nil means email is disabled.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// Deps holds all infrastructure dependencies for the routers.
type Deps struct {
	UserRepo  UserRepository
	IDVClient VerificationClient
	Mailer    Mailer
}
