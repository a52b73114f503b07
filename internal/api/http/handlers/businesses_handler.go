package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

// BusinessesHandler exposes business-side profile, gallery and
// offered-service endpoints.
type BusinessesHandler struct {
	businesses *service.BusinessService
	catalog    *service.CatalogService
}

// NewBusinessesHandler constructs handler.
func NewBusinessesHandler(businesses *service.BusinessService, catalog *service.CatalogService) *BusinessesHandler {
	return &BusinessesHandler{businesses: businesses, catalog: catalog}
}

// UpdateProfile handles PUT /businesses/me/profile.
func (h *BusinessesHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateBusinessProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := h.businesses.UpdateProfile(c.UserContext(), principal.User.ID, service.UpdateBusinessProfileInput{
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
		return mapBusinessError(err, "profile")
	}
	return c.JSON(dto.Wrap(dto.NewBusinessProfileResponse(profile)))
}

// AddPhoto handles POST /businesses/me/photos.
func (h *BusinessesHandler) AddPhoto(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AddPhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PhotoURL == "" {
		return apperrors.NewValidationError("photoUrl required", nil)
	}

	photo, err := h.businesses.AddPhoto(c.UserContext(), principal.User.ID, req.PhotoURL)
	if err != nil {
		return mapBusinessError(err, "profile")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Wrap(dto.NewPhotoResponse(photo)))
}

// ListPhotos handles GET /businesses/me/photos.
func (h *BusinessesHandler) ListPhotos(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	photos, err := h.businesses.ListPhotos(c.UserContext(), principal.User.ID)
	if err != nil {
		return mapBusinessError(err, "profile")
	}
	items := make([]dto.PhotoResponse, 0, len(photos))
	for i := range photos {
		items = append(items, dto.NewPhotoResponse(&photos[i]))
	}
	return c.JSON(dto.Wrap(items))
}

// DeletePhoto handles DELETE /businesses/me/photos/:photoID.
func (h *BusinessesHandler) DeletePhoto(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.businesses.DeletePhoto(c.UserContext(), principal.User.ID, c.Params("photoID")); err != nil {
		return mapBusinessError(err, "photo")
	}
	return c.JSON(dto.WrapMessage("photo deleted"))
}

// AddServiceLink handles POST /businesses/me/services.
func (h *BusinessesHandler) AddServiceLink(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AddServiceLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ServiceTypeID == "" {
		return apperrors.NewValidationError("serviceTypeId required", nil)
	}

	link, err := h.businesses.AddServiceLink(c.UserContext(), principal.User.ID, req.ServiceTypeID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			return apperrors.NewConflict("service already listed", nil)
		}
		return mapBusinessError(err, "service type")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Wrap(dto.NewServiceLinkResponse(link)))
}

// ListServiceLinks handles GET /businesses/me/services.
func (h *BusinessesHandler) ListServiceLinks(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	links, err := h.businesses.ListServiceLinks(c.UserContext(), principal.User.ID)
	if err != nil {
		return mapBusinessError(err, "profile")
	}
	items := make([]dto.ServiceLinkResponse, 0, len(links))
	for i := range links {
		items = append(items, dto.NewServiceLinkResponse(&links[i]))
	}
	return c.JSON(dto.Wrap(items))
}

// DeleteServiceLink handles DELETE /businesses/me/services/:serviceID.
func (h *BusinessesHandler) DeleteServiceLink(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.businesses.DeleteServiceLink(c.UserContext(), principal.User.ID, c.Params("serviceID")); err != nil {
		return mapBusinessError(err, "service")
	}
	return c.JSON(dto.WrapMessage("service delisted"))
}

// ListServiceTypes handles GET /service-types for any authenticated user.
func (h *BusinessesHandler) ListServiceTypes(c *fiber.Ctx) error {
	serviceTypes, err := h.catalog.ListServiceTypes(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ServiceTypeResponse, 0, len(serviceTypes))
	for i := range serviceTypes {
		items = append(items, dto.NewServiceTypeResponse(&serviceTypes[i]))
	}
	return c.JSON(dto.Wrap(items))
}

func mapBusinessError(err error, resource string) error {
	if errors.Is(err, service.ErrNotFound) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}
