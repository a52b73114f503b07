package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

// UsersHandler exposes account and customer-profile endpoints.
type UsersHandler struct {
	profiles *service.ProfileService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(profiles *service.ProfileService) *UsersHandler {
	return &UsersHandler{profiles: profiles}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	account, err := h.profiles.GetAccount(c.UserContext(), principal.User)
	if err != nil {
		return err
	}

	payload := fiber.Map{"user": dto.NewUserResponse(account.User)}
	if account.CustomerProfile != nil {
		payload["customerProfile"] = dto.NewCustomerProfileResponse(account.CustomerProfile)
	}
	if account.BusinessProfile != nil {
		payload["businessProfile"] = dto.NewBusinessProfileResponse(account.BusinessProfile)
	}
	return c.JSON(dto.Wrap(payload))
}

// UpdateCustomerProfile handles PUT /users/me/customer-profile.
func (h *UsersHandler) UpdateCustomerProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateCustomerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := h.profiles.UpdateCustomerProfile(c.UserContext(), principal.User.ID, service.UpdateCustomerProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		WhatsappNumber:  req.WhatsappNumber,
		ProfilePhotoURL: req.ProfilePhotoURL,
	})
	if err != nil {
		return mapProfileError(err, "profile")
	}
	return c.JSON(dto.Wrap(dto.NewCustomerProfileResponse(profile)))
}

// AddAddress handles POST /users/me/addresses.
func (h *UsersHandler) AddAddress(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.House == "" || req.Street == "" || req.City == "" {
		return apperrors.NewValidationError("house, street, city required", nil)
	}

	address, err := h.profiles.AddAddress(c.UserContext(), principal.User.ID, service.AddressInput{
		House:     req.House,
		Street:    req.Street,
		City:      req.City,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return mapProfileError(err, "profile")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Wrap(dto.NewAddressResponse(address)))
}

// ListAddresses handles GET /users/me/addresses.
func (h *UsersHandler) ListAddresses(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	addresses, err := h.profiles.ListAddresses(c.UserContext(), principal.User.ID)
	if err != nil {
		return mapProfileError(err, "profile")
	}
	items := make([]dto.AddressResponse, 0, len(addresses))
	for i := range addresses {
		items = append(items, dto.NewAddressResponse(&addresses[i]))
	}
	return c.JSON(dto.Wrap(items))
}

// UpdateAddress handles PUT /users/me/addresses/:addressID.
func (h *UsersHandler) UpdateAddress(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	address, err := h.profiles.UpdateAddress(c.UserContext(), principal.User.ID, c.Params("addressID"), service.UpdateAddressInput{
		House:     req.House,
		Street:    req.Street,
		City:      req.City,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return mapProfileError(err, "address")
	}
	return c.JSON(dto.Wrap(dto.NewAddressResponse(address)))
}

// DeleteAddress handles DELETE /users/me/addresses/:addressID.
func (h *UsersHandler) DeleteAddress(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.profiles.DeleteAddress(c.UserContext(), principal.User.ID, c.Params("addressID")); err != nil {
		return mapProfileError(err, "address")
	}
	return c.JSON(dto.WrapMessage("address deleted"))
}

func mapProfileError(err error, resource string) error {
	if errors.Is(err, service.ErrNotFound) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}
