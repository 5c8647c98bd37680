package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/counselbook/counsel-booking/controllers"
	"github.com/counselbook/counsel-booking/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, ctrl *controllers.AuthController) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/login", ctrl.Login)
	auth.Post("/refresh", ctrl.Refresh)

	// Protected routes
	auth.Get("/me", middleware.Protected(), ctrl.Me)
	auth.Patch("/me/avatar", middleware.Protected(), ctrl.UploadAvatar)
}
