package service

import "errors"

// Service-level failure kinds. Handlers map these onto HTTP statuses.
var (
	// ErrDuplicateEmail rejects registration against an existing email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials hides whether the email or password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified blocks login until the address is confirmed.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrInvalidToken covers unknown, replayed or revoked tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidOrExpiredToken covers reset tokens past their window.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// ErrNotFound reports a missing profile, address, photo or catalog entry.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists reports a duplicate catalog name or service link.
	ErrAlreadyExists = errors.New("already exists")
)
