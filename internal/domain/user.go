package domain

import "time"

// Role determines which surface of the marketplace an account can use.
// Fixed at registration; never user-mutable afterwards.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleBusiness Role = "BUSINESS"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleBusiness, RoleAdmin:
		return true
	}
	return false
}

// User is the identity record uniting credentials, role and verification
// state. Verification and reset tokens are opaque single-use capabilities;
// at most one of each kind is outstanding per user.
type User struct {
	ID                string
	Email             string
	PasswordHash      string
	Role              Role
	IsEmailVerified   bool
	VerificationToken *string
	ResetToken        *string
	ResetTokenExpires *time.Time
	GoogleID          *string
	LastLoginAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
