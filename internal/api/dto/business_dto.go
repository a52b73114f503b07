package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// BusinessProfileResponse is the public view of a business profile.
type BusinessProfileResponse struct {
	ID             string    `json:"id"`
	BusinessName   string    `json:"businessName"`
	PhoneNumber    string    `json:"phoneNumber"`
	WhatsappNumber *string   `json:"whatsappNumber,omitempty"`
	InstagramID    *string   `json:"instagramId,omitempty"`
	OwnerName      string    `json:"ownerName"`
	OwnerPhone     string    `json:"ownerPhone"`
	Building       string    `json:"building"`
	Street         string    `json:"street"`
	City           string    `json:"city"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UpdateBusinessProfileRequest carries a partial profile update.
type UpdateBusinessProfileRequest struct {
	BusinessName   *string  `json:"businessName"`
	PhoneNumber    *string  `json:"phoneNumber"`
	WhatsappNumber *string  `json:"whatsappNumber"`
	InstagramID    *string  `json:"instagramId"`
	OwnerName      *string  `json:"ownerName"`
	OwnerPhone     *string  `json:"ownerPhone"`
	Building       *string  `json:"building"`
	Street         *string  `json:"street"`
	City           *string  `json:"city"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// AddPhotoRequest payload for attaching a gallery image.
type AddPhotoRequest struct {
	PhotoURL string `json:"photoUrl"`
}

// PhotoResponse is the public view of a gallery image.
type PhotoResponse struct {
	ID        string    `json:"id"`
	PhotoURL  string    `json:"photoUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddServiceLinkRequest payload for listing a catalog service type.
type AddServiceLinkRequest struct {
	ServiceTypeID string `json:"serviceTypeId"`
}

// ServiceLinkResponse is the public view of an offered service.
type ServiceLinkResponse struct {
	ID          string               `json:"id"`
	ServiceType *ServiceTypeResponse `json:"serviceType,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// NewBusinessProfileResponse maps a domain profile.
func NewBusinessProfileResponse(profile *domain.BusinessProfile) BusinessProfileResponse {
	return BusinessProfileResponse{
		ID:             profile.ID,
		BusinessName:   profile.BusinessName,
		PhoneNumber:    profile.PhoneNumber,
		WhatsappNumber: profile.WhatsappNumber,
		InstagramID:    profile.InstagramID,
		OwnerName:      profile.OwnerName,
		OwnerPhone:     profile.OwnerPhone,
		Building:       profile.Building,
		Street:         profile.Street,
		City:           profile.City,
		Latitude:       profile.Latitude,
		Longitude:      profile.Longitude,
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
	}
}

// NewPhotoResponse maps a domain photo.
func NewPhotoResponse(photo *domain.BusinessPhoto) PhotoResponse {
	return PhotoResponse{
		ID:        photo.ID,
		PhotoURL:  photo.PhotoURL,
		CreatedAt: photo.CreatedAt,
	}
}

// NewServiceLinkResponse maps a domain service link.
func NewServiceLinkResponse(link *domain.BusinessServiceLink) ServiceLinkResponse {
	resp := ServiceLinkResponse{
		ID:        link.ID,
		CreatedAt: link.CreatedAt,
	}
	if link.ServiceType != nil {
		serviceType := NewServiceTypeResponse(link.ServiceType)
		resp.ServiceType = &serviceType
	}
	return resp
}
