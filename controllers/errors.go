package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/counselbook/counsel-booking/services"
	"github.com/counselbook/counsel-booking/utils"
)

// respondError maps service errors onto HTTP statuses. Unrecognized
// errors are logged and reported as a retryable 500 without leaking
// store-level text to the client.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrTokenExpired),
		errors.Is(err, services.ErrTokenAlreadyUsed),
		errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid request",
			Error:   err.Error(),
		})
	case errors.Is(err, services.ErrScheduleNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Not found",
			Error:   err.Error(),
		})
	case errors.Is(err, services.ErrSlotFull),
		errors.Is(err, services.ErrDuplicateSchedule),
		errors.Is(err, services.ErrRecordExists):
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Conflict",
			Error:   err.Error(),
		})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Forbidden",
			Error:   err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Unauthorized",
			Error:   err.Error(),
		})
	default:
		log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Internal error",
			Error:   "temporary failure, please retry",
		})
	}
}

// counselorID reads the authenticated counselor's ID placed in locals
// by the JWT middleware.
func counselorID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals("counselorID").(uuid.UUID)
	return id, ok
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
