package dto

// RegisterCustomerRequest payload for customer sign-up.
type RegisterCustomerRequest struct {
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	PhoneNumber    string  `json:"phoneNumber"`
	WhatsappNumber *string `json:"whatsappNumber"`
}

// RegisterBusinessRequest payload for business sign-up.
type RegisterBusinessRequest struct {
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	BusinessName   string   `json:"businessName"`
	PhoneNumber    string   `json:"phoneNumber"`
	WhatsappNumber *string  `json:"whatsappNumber"`
	InstagramID    *string  `json:"instagramId"`
	OwnerName      string   `json:"ownerName"`
	OwnerPhone     string   `json:"ownerPhone"`
	Building       string   `json:"building"`
	Street         string   `json:"street"`
	City           string   `json:"city"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest payload for initiating a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload for completing a password reset.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ResendVerificationRequest payload for re-sending the verification mail.
type ResendVerificationRequest struct {
	Email string `json:"email"`
}

// SessionResponse carries the access token for a fresh session. The
// refresh token travels in an HTTP-only cookie, never the body.
type SessionResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresIn   int64        `json:"expiresIn"`
	User        UserResponse `json:"user"`
}
