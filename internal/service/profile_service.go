package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// Account bundles an identity with whichever profile its role owns.
type Account struct {
	User            *domain.User
	CustomerProfile *domain.CustomerProfile
	BusinessProfile *domain.BusinessProfile
}

// ProfileService serves customer profile and address operations.
type ProfileService struct {
	customers  repository.CustomerRepository
	businesses repository.BusinessRepository
}

// NewProfileService builds the service.
func NewProfileService(customers repository.CustomerRepository, businesses repository.BusinessRepository) *ProfileService {
	return &ProfileService{customers: customers, businesses: businesses}
}

// GetAccount loads the caller's identity together with its profile.
// A missing profile row is not an error; the slot stays nil.
func (s *ProfileService) GetAccount(ctx context.Context, user *domain.User) (*Account, error) {
	account := &Account{User: user}

	switch user.Role {
	case domain.RoleCustomer:
		profile, err := s.customers.GetProfileByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		account.CustomerProfile = profile
	case domain.RoleBusiness:
		profile, err := s.businesses.GetProfileByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		account.BusinessProfile = profile
	}
	return account, nil
}

// UpdateCustomerProfileInput carries partial profile updates; nil fields
// are left untouched.
type UpdateCustomerProfileInput struct {
	FirstName       *string
	LastName        *string
	PhoneNumber     *string
	WhatsappNumber  *string
	ProfilePhotoURL *string
}

// UpdateCustomerProfile applies a partial update to the caller's profile.
func (s *ProfileService) UpdateCustomerProfile(ctx context.Context, userID string, input UpdateCustomerProfileInput) (*domain.CustomerProfile, error) {
	profile, err := s.customerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		profile.PhoneNumber = *input.PhoneNumber
	}
	if input.WhatsappNumber != nil {
		profile.WhatsappNumber = input.WhatsappNumber
	}
	if input.ProfilePhotoURL != nil {
		profile.ProfilePhotoURL = input.ProfilePhotoURL
	}

	if err := s.customers.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddressInput carries address creation fields.
type AddressInput struct {
	House     string
	Street    string
	City      string
	IsDefault bool
}

// AddAddress creates an address for the caller. When the new address is
// the default, the flag is cleared on every other address first.
func (s *ProfileService) AddAddress(ctx context.Context, userID string, input AddressInput) (*domain.CustomerAddress, error) {
	profile, err := s.customerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.IsDefault {
		if err := s.customers.ClearDefaultAddresses(ctx, profile.ID, ""); err != nil {
			return nil, err
		}
	}

	address := &domain.CustomerAddress{
		CustomerID: profile.ID,
		House:      input.House,
		Street:     input.Street,
		City:       input.City,
		IsDefault:  input.IsDefault,
	}
	if err := s.customers.CreateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// ListAddresses returns the caller's addresses.
func (s *ProfileService) ListAddresses(ctx context.Context, userID string) ([]domain.CustomerAddress, error) {
	profile, err := s.customerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.customers.ListAddresses(ctx, profile.ID)
}

// UpdateAddressInput carries partial address updates.
type UpdateAddressInput struct {
	House     *string
	Street    *string
	City      *string
	IsDefault *bool
}

// UpdateAddress applies a partial update. Promoting an address to default
// demotes every other address of the same customer.
func (s *ProfileService) UpdateAddress(ctx context.Context, userID, addressID string, input UpdateAddressInput) (*domain.CustomerAddress, error) {
	profile, err := s.customerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	address, err := s.customers.GetAddress(ctx, addressID, profile.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.House != nil {
		address.House = *input.House
	}
	if input.Street != nil {
		address.Street = *input.Street
	}
	if input.City != nil {
		address.City = *input.City
	}
	if input.IsDefault != nil && *input.IsDefault != address.IsDefault {
		address.IsDefault = *input.IsDefault
		if *input.IsDefault {
			if err := s.customers.ClearDefaultAddresses(ctx, profile.ID, address.ID); err != nil {
				return nil, err
			}
		}
	}

	if err := s.customers.UpdateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress removes one of the caller's addresses.
func (s *ProfileService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	profile, err := s.customerProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.customers.DeleteAddress(ctx, addressID, profile.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ProfileService) customerProfile(ctx context.Context, userID string) (*domain.CustomerProfile, error) {
	profile, err := s.customers.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}
