package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// AdminService serves back-office user inspection.
type AdminService struct {
	users    repository.UserRepository
	profiles *ProfileService
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, profiles *ProfileService) *AdminService {
	return &AdminService{users: users, profiles: profiles}
}

// ListUsers returns every identity, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetUser returns one identity with its attached profile.
func (s *AdminService) GetUser(ctx context.Context, id string) (*Account, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.profiles.GetAccount(ctx, user)
}
