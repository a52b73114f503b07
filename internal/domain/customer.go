package domain

import "time"

// CustomerProfile holds customer-facing details, keyed by the owning user.
type CustomerProfile struct {
	ID              string
	UserID          string
	FirstName       string
	LastName        string
	PhoneNumber     string
	WhatsappNumber  *string
	ProfilePhotoURL *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CustomerAddress is a delivery/visit address owned by a customer profile.
// At most one address per customer carries IsDefault=true.
type CustomerAddress struct {
	ID         string
	CustomerID string
	House      string
	Street     string
	City       string
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
