package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enterprize-service/internal/api/dto"
	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/service"
)

// RegistrationHandler exposes signup and activation endpoints.
type RegistrationHandler struct {
	registration *service.RegistrationService
}

// NewRegistrationHandler constructs handler.
func NewRegistrationHandler(registrationService *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registrationService}
}

// Register handles POST /auth/register.
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" || req.Subdomain == "" {
		return fiber.NewError(http.StatusBadRequest, "username, password, subdomain required")
	}

	credentials := domain.Credentials{Username: req.Username, PlainPassword: &req.Password}
	profile, err := h.registration.Register(c.Context(), credentials, req.Subdomain)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewProfileResponse(profile),
	})
}

// Activate handles POST /auth/activate.
func (h *RegistrationHandler) Activate(c *fiber.Ctx) error {
	var req dto.ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ActivationCode == "" {
		return fiber.NewError(http.StatusBadRequest, "activation_code required")
	}

	profile, err := h.registration.Activate(c.Context(), req.ActivationCode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile)})
}
