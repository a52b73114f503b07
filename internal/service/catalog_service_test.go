package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

func TestCreateServiceTypeTrimsAndRejectsDuplicateName(t *testing.T) {
	var created *domain.ServiceType
	repo := &mockServiceTypeRepo{
		CreateFn: func(_ context.Context, serviceType *domain.ServiceType) error {
			if created != nil && created.Name == serviceType.Name {
				return repository.ErrDuplicate
			}
			serviceType.ID = "type-1"
			created = serviceType
			return nil
		},
	}
	svc := NewCatalogService(repo)

	serviceType, err := svc.CreateServiceType(context.Background(), "  Cleaning ")
	require.NoError(t, err)
	assert.Equal(t, "Cleaning", serviceType.Name)

	_, err = svc.CreateServiceType(context.Background(), "Cleaning")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRenameServiceTypeUnknownID(t *testing.T) {
	svc := NewCatalogService(&mockServiceTypeRepo{})

	_, err := svc.RenameServiceType(context.Background(), "missing", "Plumbing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameServiceTypeDuplicateName(t *testing.T) {
	repo := &mockServiceTypeRepo{
		GetByIDFn: func(_ context.Context, id string) (*domain.ServiceType, error) {
			return &domain.ServiceType{ID: id, Name: "Cleaning"}, nil
		},
		UpdateFn: func(context.Context, *domain.ServiceType) error {
			return repository.ErrDuplicate
		},
	}
	svc := NewCatalogService(repo)

	_, err := svc.RenameServiceType(context.Background(), "type-1", "Plumbing")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestDeleteServiceTypeUnknownID(t *testing.T) {
	repo := &mockServiceTypeRepo{
		DeleteFn: func(context.Context, string) error { return pgx.ErrNoRows },
	}
	svc := NewCatalogService(repo)

	assert.ErrorIs(t, svc.DeleteServiceType(context.Background(), "missing"), ErrNotFound)
}

func TestAdminGetUserAttachesProfile(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleBusiness}
	users := &mockUserRepo{
		GetByIDFn: func(_ context.Context, id string) (*domain.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, pgx.ErrNoRows
		},
	}
	businesses := &mockBusinessRepo{
		GetProfileByUserIDFn: func(context.Context, string) (*domain.BusinessProfile, error) {
			return &domain.BusinessProfile{ID: "biz-1", UserID: user.ID}, nil
		},
	}
	svc := NewAdminService(users, NewProfileService(&mockCustomerRepo{}, businesses))

	account, err := svc.GetUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, account.BusinessProfile)
	assert.Equal(t, "biz-1", account.BusinessProfile.ID)

	_, err = svc.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
