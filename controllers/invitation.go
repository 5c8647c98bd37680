package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/counselbook/counsel-booking/services"
)

type InvitationController struct {
	invitations *services.InvitationService
}

func NewInvitationController(invitations *services.InvitationService) *InvitationController {
	return &InvitationController{invitations: invitations}
}

// Create godoc
// @Summary Issue an invitation link
// @Description Generates a single-use token valid for 7 days and emails the booking link to the recipient
// @Tags invitations
// @Accept json
// @Produce json
// @Success 201 {object} services.InvitationResult
// @Failure 400 {object} utils.ErrorResponse
// @Router /invitations [post]
func (ctrl *InvitationController) Create(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}

	type CreateInput struct {
		RecipientEmail string `json:"recipient_email"`
	}
	input := new(CreateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	result, err := ctrl.invitations.Create(c.Context(), id, input.RecipientEmail)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// List godoc
// @Summary List the counselor's issued invitations
// @Tags invitations
// @Produce json
// @Success 200 {array} models.InvitationLink
// @Failure 500 {object} utils.ErrorResponse
// @Router /invitations [get]
func (ctrl *InvitationController) List(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No authentication token"})
	}

	invitations, err := ctrl.invitations.List(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invitations)
}

// Validate godoc
// @Summary Validate an invitation token
// @Description Public check used by the booking UI; distinguishes unknown, expired, and used tokens
// @Tags invitations
// @Produce json
// @Param token query string true "Invitation token"
// @Success 200 {object} services.ValidationResult
// @Failure 400 {object} utils.ErrorResponse
// @Router /invitations/validate [get]
func (ctrl *InvitationController) Validate(c *fiber.Ctx) error {
	result, err := ctrl.invitations.Validate(c.Context(), c.Query("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
