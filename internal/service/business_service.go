package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// BusinessService serves business-side profile, gallery and offered-service
// operations.
type BusinessService struct {
	businesses   repository.BusinessRepository
	serviceTypes repository.ServiceTypeRepository
}

// NewBusinessService builds the service.
func NewBusinessService(businesses repository.BusinessRepository, serviceTypes repository.ServiceTypeRepository) *BusinessService {
	return &BusinessService{businesses: businesses, serviceTypes: serviceTypes}
}

// UpdateBusinessProfileInput carries partial profile updates; nil fields
// are left untouched.
type UpdateBusinessProfileInput struct {
	BusinessName   *string
	PhoneNumber    *string
	WhatsappNumber *string
	InstagramID    *string
	OwnerName      *string
	OwnerPhone     *string
	Building       *string
	Street         *string
	City           *string
	Latitude       *float64
	Longitude      *float64
}

// UpdateProfile applies a partial update to the caller's business profile.
func (s *BusinessService) UpdateProfile(ctx context.Context, userID string, input UpdateBusinessProfileInput) (*domain.BusinessProfile, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != nil {
		profile.BusinessName = *input.BusinessName
	}
	if input.PhoneNumber != nil {
		profile.PhoneNumber = *input.PhoneNumber
	}
	if input.WhatsappNumber != nil {
		profile.WhatsappNumber = input.WhatsappNumber
	}
	if input.InstagramID != nil {
		profile.InstagramID = input.InstagramID
	}
	if input.OwnerName != nil {
		profile.OwnerName = *input.OwnerName
	}
	if input.OwnerPhone != nil {
		profile.OwnerPhone = *input.OwnerPhone
	}
	if input.Building != nil {
		profile.Building = *input.Building
	}
	if input.Street != nil {
		profile.Street = *input.Street
	}
	if input.City != nil {
		profile.City = *input.City
	}
	if input.Latitude != nil {
		profile.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		profile.Longitude = input.Longitude
	}

	if err := s.businesses.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddPhoto attaches a gallery image to the caller's business.
func (s *BusinessService) AddPhoto(ctx context.Context, userID, photoURL string) (*domain.BusinessPhoto, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	photo := &domain.BusinessPhoto{
		BusinessID: profile.ID,
		PhotoURL:   photoURL,
	}
	if err := s.businesses.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// ListPhotos returns the caller's gallery.
func (s *BusinessService) ListPhotos(ctx context.Context, userID string) ([]domain.BusinessPhoto, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.businesses.ListPhotos(ctx, profile.ID)
}

// DeletePhoto removes a gallery image owned by the caller.
func (s *BusinessService) DeletePhoto(ctx context.Context, userID, photoID string) error {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.businesses.DeletePhoto(ctx, photoID, profile.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AddServiceLink lists a catalog service type under the caller's business.
// The type must exist, and each type may be listed at most once.
func (s *BusinessService) AddServiceLink(ctx context.Context, userID, serviceTypeID string) (*domain.BusinessServiceLink, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	serviceType, err := s.serviceTypes.GetByID(ctx, serviceTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	link := &domain.BusinessServiceLink{
		BusinessID:    profile.ID,
		ServiceTypeID: serviceType.ID,
	}
	if err := s.businesses.CreateServiceLink(ctx, link); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	link.ServiceType = serviceType
	return link, nil
}

// ListServiceLinks returns the caller's offered services with their
// catalog entries attached.
func (s *BusinessService) ListServiceLinks(ctx context.Context, userID string) ([]domain.BusinessServiceLink, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.businesses.ListServiceLinks(ctx, profile.ID)
}

// DeleteServiceLink delists one of the caller's offered services.
func (s *BusinessService) DeleteServiceLink(ctx context.Context, userID, linkID string) error {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.businesses.DeleteServiceLink(ctx, linkID, profile.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *BusinessService) profile(ctx context.Context, userID string) (*domain.BusinessProfile, error) {
	profile, err := s.businesses.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}
