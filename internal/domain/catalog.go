package domain

import "time"

// ServiceType is an admin-managed catalog entry businesses can offer.
type ServiceType struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
