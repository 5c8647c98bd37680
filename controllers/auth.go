package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/counselbook/counsel-booking/services"
	"github.com/counselbook/counsel-booking/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login godoc
// @Summary Authenticate a counselor
// @Description Exchange email and password for access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	result, err := ctrl.auth.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Refresh godoc
// @Summary Refresh an access token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} fiber.Map
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/refresh [post]
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(RefreshRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := ctrl.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

// Me godoc
// @Summary Get the authenticated counselor's profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.Counselor
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/me [get]
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No authentication token",
		})
	}

	profile, err := ctrl.auth.Profile(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UploadAvatar godoc
// @Summary Upload a profile image for the authenticated counselor
// @Tags auth
// @Accept mpfd
// @Produce json
// @Success 200 {object} fiber.Map
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/me/avatar [patch]
func (ctrl *AuthController) UploadAvatar(c *fiber.Ctx) error {
	id, ok := counselorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No authentication token",
		})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Avatar file is required",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot read avatar file",
		})
	}
	defer file.Close()

	url, err := utils.UploadAvatar(file, "counselor-"+id.String())
	if err != nil {
		return respondError(c, err)
	}
	if err := ctrl.auth.SetAvatar(c.Context(), id, url); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"avatar_url": url})
}
