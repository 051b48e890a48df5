package handlers

import (
	"bytes"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enterprize-service/internal/api/dto"
	"github.com/spec-kit/enterprize-service/internal/auth"
	"github.com/spec-kit/enterprize-service/internal/service"
)

// ProfilesHandler exposes profile endpoints: the caller's own record, admin
// listings, invitations, photos and the dashboard.
type ProfilesHandler struct {
	profiles *service.ProfileService
}

// NewProfilesHandler constructs handler.
func NewProfilesHandler(profileService *service.ProfileService) *ProfilesHandler {
	return &ProfilesHandler{profiles: profileService}
}

// Me handles GET /profiles/me.
func (h *ProfilesHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(principal.Profile)})
}

// Update handles PATCH /profiles/me.
func (h *ProfilesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.profiles.Update(c.Context(), principal.Username(), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile)})
}

// Get handles GET /profiles/:reference. Admin only; the response includes the
// HR-only notes, and profiles of other enterprizes read as not found.
func (h *ProfilesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	profile, err := h.profiles.RetrieveByReferenceForAdmin(c.Context(), c.Params("reference"), principal.Username())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminProfileResponse(profile)})
}

// UpdateNotes handles PATCH /profiles/:reference/notes. Admin only.
func (h *ProfilesHandler) UpdateNotes(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.NotesUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.profiles.UpdateNonPublic(c.Context(), c.Params("reference"), principal.Username(), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminProfileResponse(profile)})
}

// UploadPhoto handles PUT /profiles/me/photo. The raw body is the image.
func (h *ProfilesHandler) UploadPhoto(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	body := c.Body()
	if len(body) == 0 {
		return fiber.NewError(http.StatusBadRequest, "empty photo payload")
	}
	contentType := c.Get(fiber.HeaderContentType, "application/octet-stream")

	url, err := h.profiles.UploadPhoto(c.Context(), principal.Username(), bytes.NewReader(body), contentType)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"photo_url": url}})
}

// DeletePhoto handles DELETE /profiles/me/photo.
func (h *ProfilesHandler) DeletePhoto(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.profiles.DeletePhoto(c.Context(), principal.Username()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Invite handles POST /profiles/invite. Admin only.
func (h *ProfilesHandler) Invite(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	profile, err := h.profiles.Invite(c.Context(), req.Email, principal.Username())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProfileResponse(profile)})
}

// List handles GET /profiles. Admin only; active plain users of the admin's
// enterprize.
func (h *ProfilesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	profiles, err := h.profiles.ListForAdmin(c.Context(), principal.Username())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponses(profiles)})
}

// ListInvited handles GET /profiles/invited. Admin only.
func (h *ProfilesHandler) ListInvited(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	profiles, err := h.profiles.ListInvitedForAdmin(c.Context(), principal.Username())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponses(profiles)})
}

// Dashboard handles GET /profiles/dashboard. Admin only.
func (h *ProfilesHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	stats, err := h.profiles.Dashboard(c.Context(), principal.Username())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		TotalRegistrations:  stats.TotalRegistrations,
		ActiveRegistrations: stats.ActiveRegistrations,
		TotalInvitations:    stats.TotalInvitations,
		AcceptedInvitations: stats.AcceptedInvitations,
	}})
}
