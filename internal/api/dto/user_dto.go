package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// UserResponse is the public view of an identity row.
type UserResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	GoogleID        *string    `json:"googleId,omitempty"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// CustomerProfileResponse is the public view of a customer profile.
type CustomerProfileResponse struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	PhoneNumber     string    `json:"phoneNumber"`
	WhatsappNumber  *string   `json:"whatsappNumber,omitempty"`
	ProfilePhotoURL *string   `json:"profilePhotoUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UpdateCustomerProfileRequest carries a partial profile update.
type UpdateCustomerProfileRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	PhoneNumber     *string `json:"phoneNumber"`
	WhatsappNumber  *string `json:"whatsappNumber"`
	ProfilePhotoURL *string `json:"profilePhotoUrl"`
}

// AddressRequest payload for creating an address.
type AddressRequest struct {
	House     string `json:"house"`
	Street    string `json:"street"`
	City      string `json:"city"`
	IsDefault bool   `json:"isDefault"`
}

// UpdateAddressRequest carries a partial address update.
type UpdateAddressRequest struct {
	House     *string `json:"house"`
	Street    *string `json:"street"`
	City      *string `json:"city"`
	IsDefault *bool   `json:"isDefault"`
}

// AddressResponse is the public view of a customer address.
type AddressResponse struct {
	ID        string    `json:"id"`
	House     string    `json:"house"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Role:            string(user.Role),
		IsEmailVerified: user.IsEmailVerified,
		GoogleID:        user.GoogleID,
		LastLoginAt:     user.LastLoginAt,
		CreatedAt:       user.CreatedAt,
	}
}

// NewCustomerProfileResponse maps a domain profile.
func NewCustomerProfileResponse(profile *domain.CustomerProfile) CustomerProfileResponse {
	return CustomerProfileResponse{
		ID:              profile.ID,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		PhoneNumber:     profile.PhoneNumber,
		WhatsappNumber:  profile.WhatsappNumber,
		ProfilePhotoURL: profile.ProfilePhotoURL,
		CreatedAt:       profile.CreatedAt,
		UpdatedAt:       profile.UpdatedAt,
	}
}

// NewAddressResponse maps a domain address.
func NewAddressResponse(address *domain.CustomerAddress) AddressResponse {
	return AddressResponse{
		ID:        address.ID,
		House:     address.House,
		Street:    address.Street,
		City:      address.City,
		IsDefault: address.IsDefault,
		CreatedAt: address.CreatedAt,
		UpdatedAt: address.UpdatedAt,
	}
}
