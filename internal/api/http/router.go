package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Businesses     *handlers.BusinessesHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register/customer", cfg.Auth.RegisterCustomer)
	authGroup.Post("/register/business", cfg.Auth.RegisterBusiness)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/refresh-token", cfg.Auth.Refresh)
	authGroup.Get("/verify-email/:token", cfg.Auth.VerifyEmail)
	authGroup.Post("/resend-verification", cfg.Auth.ResendVerification)
	authGroup.Post("/password-reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", cfg.Auth.ConfirmPasswordReset)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.Me)

	customerOnly := users.Group("", auth.RequireRole(domain.RoleCustomer))
	customerOnly.Put("/me/customer-profile", cfg.Users.UpdateCustomerProfile)
	customerOnly.Post("/me/addresses", cfg.Users.AddAddress)
	customerOnly.Get("/me/addresses", cfg.Users.ListAddresses)
	customerOnly.Put("/me/addresses/:addressID", cfg.Users.UpdateAddress)
	customerOnly.Delete("/me/addresses/:addressID", cfg.Users.DeleteAddress)

	businesses := app.Group("/businesses", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleBusiness))
	businesses.Put("/me/profile", cfg.Businesses.UpdateProfile)
	businesses.Post("/me/photos", cfg.Businesses.AddPhoto)
	businesses.Get("/me/photos", cfg.Businesses.ListPhotos)
	businesses.Delete("/me/photos/:photoID", cfg.Businesses.DeletePhoto)
	businesses.Post("/me/services", cfg.Businesses.AddServiceLink)
	businesses.Get("/me/services", cfg.Businesses.ListServiceLinks)
	businesses.Delete("/me/services/:serviceID", cfg.Businesses.DeleteServiceLink)

	app.Get("/service-types", cfg.AuthMiddleware.Handle, cfg.Businesses.ListServiceTypes)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:userID", cfg.Admin.GetUser)
	admin.Post("/service-types", cfg.Admin.CreateServiceType)
	admin.Get("/service-types", cfg.Admin.ListServiceTypes)
	admin.Put("/service-types/:serviceTypeID", cfg.Admin.UpdateServiceType)
	admin.Delete("/service-types/:serviceTypeID", cfg.Admin.DeleteServiceType)
}
