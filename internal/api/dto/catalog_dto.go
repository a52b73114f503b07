package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ServiceTypeRequest payload for creating or renaming a catalog entry.
type ServiceTypeRequest struct {
	Name string `json:"name"`
}

// ServiceTypeResponse is the public view of a catalog entry.
type ServiceTypeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewServiceTypeResponse maps a domain service type.
func NewServiceTypeResponse(serviceType *domain.ServiceType) ServiceTypeResponse {
	return ServiceTypeResponse{
		ID:        serviceType.ID,
		Name:      serviceType.Name,
		CreatedAt: serviceType.CreatedAt,
	}
}
