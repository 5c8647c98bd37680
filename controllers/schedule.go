package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/counselbook/counsel-booking/services"
)

type ScheduleController struct {
	schedules   *services.ScheduleService
	invitations *services.InvitationService
}

func NewScheduleController(schedules *services.ScheduleService, invitations *services.InvitationService) *ScheduleController {
	return &ScheduleController{schedules: schedules, invitations: invitations}
}

// List godoc
// @Summary List the counselor's schedules
// @Description List schedules with booking counts, optionally bounded by start_date/end_date
// @Tags schedules
// @Produce json
// @Success 200 {array} services.ScheduleView
// @Failure 500 {object} utils.ErrorResponse
// @Router /schedules [get]
func (ctrl *ScheduleController) List(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}

	views, err := ctrl.schedules.List(c.Context(), id, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// Create godoc
// @Summary Create a schedule slot
// @Description Create a 30-minute slot; end time is derived from the start time
// @Tags schedules
// @Accept json
// @Produce json
// @Success 201 {object} models.Schedule
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /schedules [post]
func (ctrl *ScheduleController) Create(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}

	type CreateInput struct {
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
	}
	input := new(CreateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	schedule, err := ctrl.schedules.Create(c.Context(), id, input.Date, input.StartTime)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// Update godoc
// @Summary Update an owned schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} models.Schedule
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /schedules/{id} [patch]
func (ctrl *ScheduleController) Update(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}

	type UpdateInput struct {
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
	}
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	schedule, err := ctrl.schedules.Update(c.Context(), id, scheduleID, input.Date, input.StartTime)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(schedule)
}

// Remove godoc
// @Summary Delete an owned schedule and its bookings
// @Tags schedules
// @Param id path string true "Schedule ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /schedules/{id} [delete]
func (ctrl *ScheduleController) Remove(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}

	if err := ctrl.schedules.Remove(c.Context(), id, scheduleID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Available godoc
// @Summary List available slots for an invitation token
// @Description Public, token-gated view of a counselor's open slots
// @Tags schedules
// @Produce json
// @Param token query string true "Invitation token"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {object} fiber.Map
// @Failure 400 {object} utils.ErrorResponse
// @Router /schedules/available [get]
func (ctrl *ScheduleController) Available(c *fiber.Ctx) error {
	validation, err := ctrl.invitations.Validate(c.Context(), c.Query("token"))
	if err != nil {
		return respondError(c, err)
	}

	slots, err := ctrl.schedules.FindAvailable(c.Context(), validation.Counselor.ID, c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"counselor": validation.Counselor,
		"schedules": slots,
	})
}
