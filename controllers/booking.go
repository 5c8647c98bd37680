package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/services"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// Create godoc
// @Summary Book a slot with an invitation token
// @Description Reserves a seat on a schedule. Capacity is enforced inside a locked transaction; the invitation token is consumed atomically with the reservation.
// @Tags bookings
// @Accept json
// @Produce json
// @Success 201 {object} services.BookingResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /bookings [post]
func (ctrl *BookingController) Create(c *fiber.Ctx) error {
	type CreateInput struct {
		ScheduleID  string  `json:"schedule_id"`
		Token       string  `json:"token"`
		ClientName  string  `json:"client_name"`
		ClientEmail string  `json:"client_email"`
		ClientPhone *string `json:"client_phone"`
	}
	input := new(CreateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	scheduleID, err := uuid.Parse(input.ScheduleID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}

	result, err := ctrl.bookings.Create(c.Context(), services.CreateBookingInput{
		ScheduleID:  scheduleID,
		Token:       input.Token,
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		ClientPhone: input.ClientPhone,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// List godoc
// @Summary List bookings across the counselor's schedules
// @Tags bookings
// @Produce json
// @Param schedule_id query string false "Filter by schedule"
// @Param status query string false "Filter by status"
// @Success 200 {array} models.Booking
// @Failure 500 {object} utils.ErrorResponse
// @Router /bookings [get]
func (ctrl *BookingController) List(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}

	var scheduleID *uuid.UUID
	if raw := c.Query("schedule_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
		}
		scheduleID = &parsed
	}

	bookings, err := ctrl.bookings.List(c.Context(), id, scheduleID, models.BookingStatus(c.Query("status")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bookings)
}

// Get godoc
// @Summary Get a booking with its schedule and consultation record
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 404 {object} utils.ErrorResponse
// @Router /bookings/{id} [get]
func (ctrl *BookingController) Get(c *fiber.Ctx) error {
	bookingID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := ctrl.bookings.Get(c.Context(), bookingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}

// UpdateStatus godoc
// @Summary Move a booking through its lifecycle
// @Description Confirm, cancel, or complete a booking on an owned schedule. Cancelling frees a seat.
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /bookings/{id}/status [patch]
func (ctrl *BookingController) UpdateStatus(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}
	bookingID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	type StatusInput struct {
		Status models.BookingStatus `json:"status"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	booking, err := ctrl.bookings.UpdateStatus(c.Context(), id, bookingID, input.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}
