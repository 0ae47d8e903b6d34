package user

import (
	"context"
	"time"

	"github.com/go-idv-api/internal/domain"
	"github.com/go-idv-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	List(ctx context.Context) ([]domain.BasicUserInfo, error)
	// GetBasicInfo returns id and username for the given user, or
	// domain.ErrNotFound when the id doesn't resolve (stale cookie).
	GetBasicInfo(ctx context.Context, userID string) (*domain.BasicUserInfo, error)
	GetFullInfo(ctx context.Context, userID string) (*domain.User, error)
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	Scan(ctx context.Context) ([]domain.BasicUserInfo, error)
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

// Create persists a fresh user row with empty verification fields. There is
// no uniqueness requirement on usernames; ids are the only identity.
func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		UserID:    id.New(),
		Username:  req.Username,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]domain.BasicUserInfo, error) {
	return s.repo.Scan(ctx)
}

func (s *service) GetBasicInfo(ctx context.Context, userID string) (*domain.BasicUserInfo, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.BasicUserInfo{UserID: u.UserID, Username: u.Username}, nil
}

func (s *service) GetFullInfo(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}
