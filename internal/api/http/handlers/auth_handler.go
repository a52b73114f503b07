package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

const refreshCookieName = "refresh_token"

const minPasswordLength = 8

// AuthHandler exposes registration, session and account-recovery endpoints.
type AuthHandler struct {
	accounts      *service.AccountService
	secureCookies bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accounts *service.AccountService, secureCookies bool) *AuthHandler {
	return &AuthHandler{accounts: accounts, secureCookies: secureCookies}
}

// RegisterCustomer handles POST /auth/register/customer.
func (h *AuthHandler) RegisterCustomer(c *fiber.Ctx) error {
	var req dto.RegisterCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" || req.PhoneNumber == "" {
		return apperrors.NewValidationError("email, password, firstName, lastName, phoneNumber required", nil)
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	user, err := h.accounts.RegisterCustomer(c.UserContext(), service.RegisterCustomerInput{
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PhoneNumber:    req.PhoneNumber,
		WhatsappNumber: req.WhatsappNumber,
	})
	if err != nil {
		return mapAccountError(err)
	}

	return c.Status(http.StatusCreated).JSON(dto.Envelope{
		Success: true,
		Message: "registration successful, please verify your email",
		Data:    dto.NewUserResponse(user),
	})
}

// RegisterBusiness handles POST /auth/register/business.
func (h *AuthHandler) RegisterBusiness(c *fiber.Ctx) error {
	var req dto.RegisterBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.BusinessName == "" || req.PhoneNumber == "" ||
		req.OwnerName == "" || req.OwnerPhone == "" || req.Building == "" || req.Street == "" || req.City == "" {
		return apperrors.NewValidationError("email, password, businessName, phoneNumber, ownerName, ownerPhone, building, street, city required", nil)
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	user, err := h.accounts.RegisterBusiness(c.UserContext(), service.RegisterBusinessInput{
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Password:       req.Password,
		BusinessName:   req.BusinessName,
		PhoneNumber:    req.PhoneNumber,
		WhatsappNumber: req.WhatsappNumber,
		InstagramID:    req.InstagramID,
		OwnerName:      req.OwnerName,
		OwnerPhone:     req.OwnerPhone,
		Building:       req.Building,
		Street:         req.Street,
		City:           req.City,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	})
	if err != nil {
		return mapAccountError(err)
	}

	return c.Status(http.StatusCreated).JSON(dto.Envelope{
		Success: true,
		Message: "registration successful, please verify your email",
		Data:    dto.NewUserResponse(user),
	})
}

// Login handles POST /auth/login. The refresh token is delivered as an
// HTTP-only cookie; only the access token appears in the body.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, pair, err := h.accounts.Login(c.UserContext(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return mapAccountError(err)
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(dto.Wrap(dto.SessionResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   pair.ExpiresIn,
		User:        dto.NewUserResponse(user),
	}))
}

// Refresh handles POST /auth/refresh-token. The presented cookie is
// consumed; a rotated pair replaces it.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshCookieName)
	if refreshToken == "" {
		return apperrors.NewUnauthorized("refresh token required")
	}

	pair, err := h.accounts.Refresh(c.UserContext(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		return mapAccountError(err)
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(dto.Wrap(fiber.Map{
		"accessToken": pair.AccessToken,
		"expiresIn":   pair.ExpiresIn,
	}))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if refreshToken := c.Cookies(refreshCookieName); refreshToken != "" {
		h.accounts.Logout(c.UserContext(), refreshToken)
	}
	h.clearRefreshCookie(c)
	return c.JSON(dto.WrapMessage("logged out"))
}

// VerifyEmail handles GET /auth/verify-email/:token.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return apperrors.NewValidationError("token required", nil)
	}
	if err := h.accounts.VerifyEmail(c.UserContext(), token); err != nil {
		return mapAccountError(err)
	}
	return c.JSON(dto.WrapMessage("email verified"))
}

// ResendVerification handles POST /auth/resend-verification. The response
// does not reveal whether the address is registered or already verified.
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req dto.ResendVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if err := h.accounts.ResendVerificationEmail(c.UserContext(), strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
		return mapAccountError(err)
	}
	return c.JSON(dto.WrapMessage("if the email is registered, a verification link has been sent"))
}

// RequestPasswordReset handles POST /auth/password-reset/request. The
// response does not reveal whether the address is registered.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if err := h.accounts.InitiatePasswordReset(c.UserContext(), strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
		return mapAccountError(err)
	}
	return c.JSON(dto.WrapMessage("if the email is registered, a reset link has been sent"))
}

// ConfirmPasswordReset handles POST /auth/password-reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and newPassword required", nil)
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if err := h.accounts.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return mapAccountError(err)
	}
	return c.JSON(dto.WrapMessage("password updated"))
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/auth",
		Expires:  time.Now().Add(h.accounts.TokenManager().RefreshTTL()),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/auth",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func mapAccountError(err error) error {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return apperrors.NewConflict("email already registered", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.NewUnauthorized("invalid email or password")
	case errors.Is(err, service.ErrEmailNotVerified):
		return apperrors.NewForbidden("email not verified")
	case errors.Is(err, service.ErrInvalidToken):
		return apperrors.NewUnauthorized("invalid token")
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		return apperrors.NewValidationError("invalid or expired token", nil)
	default:
		return err
	}
}
