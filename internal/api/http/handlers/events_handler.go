package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enterprize-service/internal/api/dto"
	"github.com/spec-kit/enterprize-service/internal/auth"
	"github.com/spec-kit/enterprize-service/internal/service"
)

// EventsHandler exposes the enterprize calendar.
type EventsHandler struct {
	calendar *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{calendar: eventService}
}

// Create handles POST /events. Admin only.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.EventCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" || req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return fiber.NewError(http.StatusBadRequest, "title, starts_at, ends_at required")
	}

	event, err := h.calendar.Create(c.Context(), principal.Profile, req.Content())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// List handles GET /events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	eventList, err := h.calendar.List(c.Context(), principal.Profile.Enterprize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponses(eventList)})
}

// Get handles GET /events/:reference.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	event, err := h.calendar.Retrieve(c.Context(), c.Params("reference"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Delete handles DELETE /events/:reference. Admin only; events of other
// enterprizes read as not found.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.calendar.Delete(c.Context(), c.Params("reference"), principal.Username()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
