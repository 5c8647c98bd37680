package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/counselbook/counsel-booking/services"
)

type RecordController struct {
	records *services.RecordService
}

func NewRecordController(records *services.RecordService) *RecordController {
	return &RecordController{records: records}
}

type recordInput struct {
	Notes string `json:"notes"`
}

// Create godoc
// @Summary Attach consultation notes to a booking
// @Tags records
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 201 {object} models.ConsultationRecord
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /bookings/{id}/record [post]
func (ctrl *RecordController) Create(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}
	bookingID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	input := new(recordInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	record, err := ctrl.records.Create(c.Context(), id, bookingID, input.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// Update godoc
// @Summary Update the consultation notes of a booking
// @Tags records
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} models.ConsultationRecord
// @Failure 404 {object} utils.ErrorResponse
// @Router /bookings/{id}/record [patch]
func (ctrl *RecordController) Update(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}
	bookingID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	input := new(recordInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	record, err := ctrl.records.Update(c.Context(), id, bookingID, input.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(record)
}

// Get godoc
// @Summary Get the consultation record of a booking
// @Tags records
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} models.ConsultationRecord
// @Failure 404 {object} utils.ErrorResponse
// @Router /bookings/{id}/record [get]
func (ctrl *RecordController) Get(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}
	bookingID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	record, err := ctrl.records.Get(c.Context(), id, bookingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(record)
}
