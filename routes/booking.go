package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/counselbook/counsel-booking/controllers"
	"github.com/counselbook/counsel-booking/middleware"
)

// SetupBookingRoutes configures booking and consultation record routes
func SetupBookingRoutes(app *fiber.App, bookings *controllers.BookingController, records *controllers.RecordController) {
	group := app.Group("/bookings")

	// Public: clients book with an invitation token
	group.Post("/", bookings.Create)

	group.Get("/", middleware.Protected(), bookings.List)
	group.Get("/:id", middleware.Protected(), bookings.Get)
	group.Patch("/:id/status", middleware.Protected(), bookings.UpdateStatus)

	group.Post("/:id/record", middleware.Protected(), records.Create)
	group.Patch("/:id/record", middleware.Protected(), records.Update)
	group.Get("/:id/record", middleware.Protected(), records.Get)
}
