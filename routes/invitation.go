package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/counselbook/counsel-booking/controllers"
	"github.com/counselbook/counsel-booking/middleware"
)

// SetupInvitationRoutes configures all invitation related routes
func SetupInvitationRoutes(app *fiber.App, ctrl *controllers.InvitationController) {
	invitations := app.Group("/invitations")

	// Public: the booking UI resolves tokens before showing slots
	invitations.Get("/validate", ctrl.Validate)

	invitations.Post("/", middleware.Protected(), ctrl.Create)
	invitations.Get("/", middleware.Protected(), ctrl.List)
}
