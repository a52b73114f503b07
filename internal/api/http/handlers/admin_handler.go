package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

// AdminHandler exposes back-office endpoints: user inspection and
// catalog management. Routes are gated to the ADMIN role.
type AdminHandler struct {
	admin   *service.AdminService
	catalog *service.CatalogService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService, catalog *service.CatalogService) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalog}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(dto.Wrap(items))
}

// GetUser handles GET /admin/users/:userID.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	account, err := h.admin.GetUser(c.UserContext(), c.Params("userID"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return apperrors.NewNotFound("user", nil)
		}
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

// CreateServiceType handles POST /admin/service-types.
func (h *AdminHandler) CreateServiceType(c *fiber.Ctx) error {
	var req dto.ServiceTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	serviceType, err := h.catalog.CreateServiceType(c.UserContext(), req.Name)
	if err != nil {
		return mapCatalogError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Wrap(dto.NewServiceTypeResponse(serviceType)))
}

// ListServiceTypes handles GET /admin/service-types.
func (h *AdminHandler) ListServiceTypes(c *fiber.Ctx) error {
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

// UpdateServiceType handles PUT /admin/service-types/:serviceTypeID.
func (h *AdminHandler) UpdateServiceType(c *fiber.Ctx) error {
	var req dto.ServiceTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	serviceType, err := h.catalog.RenameServiceType(c.UserContext(), c.Params("serviceTypeID"), req.Name)
	if err != nil {
		return mapCatalogError(err)
	}
	return c.JSON(dto.Wrap(dto.NewServiceTypeResponse(serviceType)))
}

// DeleteServiceType handles DELETE /admin/service-types/:serviceTypeID.
func (h *AdminHandler) DeleteServiceType(c *fiber.Ctx) error {
	if err := h.catalog.DeleteServiceType(c.UserContext(), c.Params("serviceTypeID")); err != nil {
		return mapCatalogError(err)
	}
	return c.JSON(dto.WrapMessage("service type deleted"))
}

func mapCatalogError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return apperrors.NewNotFound("service type", nil)
	case errors.Is(err, service.ErrAlreadyExists):
		return apperrors.NewConflict("service type name already in use", nil)
	default:
		return err
	}
}
