package domain

import "time"

// BusinessProfile holds the storefront details for a business account.
type BusinessProfile struct {
	ID             string
	UserID         string
	BusinessName   string
	PhoneNumber    string
	WhatsappNumber *string
	InstagramID    *string
	OwnerName      string
	OwnerPhone     string
	Building       string
	Street         string
	City           string
	Latitude       *float64
	Longitude      *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BusinessPhoto is a gallery image attached to a business profile.
type BusinessPhoto struct {
	ID         string
	BusinessID string
	PhotoURL   string
	CreatedAt  time.Time
}

// BusinessServiceLink associates a business with a catalog service type.
// A business may list each service type at most once.
type BusinessServiceLink struct {
	ID            string
	BusinessID    string
	ServiceTypeID string
	ServiceType   *ServiceType
	CreatedAt     time.Time
}
