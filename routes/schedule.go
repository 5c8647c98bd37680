package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/counselbook/counsel-booking/controllers"
	"github.com/counselbook/counsel-booking/middleware"
)

// SetupScheduleRoutes configures all schedule related routes
func SetupScheduleRoutes(app *fiber.App, ctrl *controllers.ScheduleController) {
	schedules := app.Group("/schedules")

	// Public, token-gated availability view for invited clients
	schedules.Get("/available", ctrl.Available)

	schedules.Get("/", middleware.Protected(), ctrl.List)
	schedules.Post("/", middleware.Protected(), ctrl.Create)
	schedules.Patch("/:id", middleware.Protected(), ctrl.Update)
	schedules.Delete("/:id", middleware.Protected(), ctrl.Remove)
}
