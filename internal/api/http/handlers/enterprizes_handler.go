package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enterprize-service/internal/api/dto"
	"github.com/spec-kit/enterprize-service/internal/service"
)

// EnterprizesHandler exposes tenant management endpoints.
type EnterprizesHandler struct {
	enterprizes *service.EnterprizeService
}

// NewEnterprizesHandler constructs handler.
func NewEnterprizesHandler(enterprizeService *service.EnterprizeService) *EnterprizesHandler {
	return &EnterprizesHandler{enterprizes: enterprizeService}
}

// Create handles POST /enterprizes.
func (h *EnterprizesHandler) Create(c *fiber.Ctx) error {
	var req dto.EnterprizeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Subdomain == "" {
		return fiber.NewError(http.StatusBadRequest, "name and subdomain required")
	}

	enterprize, err := h.enterprizes.Create(c.Context(), req.Name, req.Subdomain)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewEnterprizeResponse(enterprize),
	})
}

// Get handles GET /enterprizes/:subdomain.
func (h *EnterprizesHandler) Get(c *fiber.Ctx) error {
	enterprize, err := h.enterprizes.RetrieveBySubdomain(c.Context(), c.Params("subdomain"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEnterprizeResponse(enterprize)})
}
