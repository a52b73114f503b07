package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// CatalogService manages the service-type catalog. Reads are public;
// writes are reserved for administrators at the routing layer.
type CatalogService struct {
	serviceTypes repository.ServiceTypeRepository
}

// NewCatalogService builds the service.
func NewCatalogService(serviceTypes repository.ServiceTypeRepository) *CatalogService {
	return &CatalogService{serviceTypes: serviceTypes}
}

// ListServiceTypes returns the catalog ordered by name.
func (s *CatalogService) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	return s.serviceTypes.List(ctx)
}

// GetServiceType returns a single catalog entry.
func (s *CatalogService) GetServiceType(ctx context.Context, id string) (*domain.ServiceType, error) {
	serviceType, err := s.serviceTypes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return serviceType, nil
}

// CreateServiceType adds a catalog entry. Names are unique.
func (s *CatalogService) CreateServiceType(ctx context.Context, name string) (*domain.ServiceType, error) {
	serviceType := &domain.ServiceType{Name: strings.TrimSpace(name)}
	if err := s.serviceTypes.Create(ctx, serviceType); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return serviceType, nil
}

// RenameServiceType changes a catalog entry's name.
func (s *CatalogService) RenameServiceType(ctx context.Context, id, name string) (*domain.ServiceType, error) {
	serviceType, err := s.GetServiceType(ctx, id)
	if err != nil {
		return nil, err
	}

	serviceType.Name = strings.TrimSpace(name)
	if err := s.serviceTypes.Update(ctx, serviceType); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return serviceType, nil
}

// DeleteServiceType removes a catalog entry. Listings referencing it are
// removed by the schema's cascade.
func (s *CatalogService) DeleteServiceType(ctx context.Context, id string) error {
	if err := s.serviceTypes.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
