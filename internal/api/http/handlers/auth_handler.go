package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enterprize-service/internal/api/dto"
	"github.com/spec-kit/enterprize-service/internal/auth"
	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/service"
)

// AuthHandler exposes login and the credential change flows.
type AuthHandler struct {
	auth     *service.AuthService
	profiles *service.ProfileService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, profileService *service.ProfileService) *AuthHandler {
	return &AuthHandler{auth: authService, profiles: profileService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	credentials := domain.Credentials{Username: req.Username, PlainPassword: &req.Password}
	profile, token, expiresAt, err := h.auth.Login(c.Context(), credentials)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"profile": dto.NewProfileResponse(profile),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}

// InitiatePasswordChange handles POST /auth/password/change. The caller is
// authenticated; a confirmation token is mailed out.
func (h *AuthHandler) InitiatePasswordChange(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.auth.InitiatePasswordChange(c.Context(), principal.Profile); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "initiated"}})
}

// ConfirmPasswordChange handles POST /auth/password/confirm. The token was
// mailed at initiation and authenticates the change on its own.
func (h *AuthHandler) ConfirmPasswordChange(c *fiber.Ctx) error {
	var req dto.PasswordChangeConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "token and new_password required")
	}

	username, err := h.auth.Tokens().DecodePasswordChangeToken(req.Token)
	if err != nil {
		return err
	}
	profile, err := h.profiles.RetrieveByUsername(c.Context(), username)
	if err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.Context(), profile, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "changed"}})
}

// InitiateUsernameChange handles POST /auth/username/change.
func (h *AuthHandler) InitiateUsernameChange(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.UsernameChangeInitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.NewUsername == "" {
		return fiber.NewError(http.StatusBadRequest, "new_username required")
	}

	if err := h.auth.InitiateUsernameChange(c.Context(), principal.Profile, req.NewUsername); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "initiated"}})
}

// ConfirmUsernameChange handles POST /auth/username/confirm.
func (h *AuthHandler) ConfirmUsernameChange(c *fiber.Ctx) error {
	var req dto.UsernameChangeConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" {
		return fiber.NewError(http.StatusBadRequest, "token required")
	}

	username, newUsername, err := h.auth.Tokens().DecodeUsernameChangeToken(req.Token)
	if err != nil {
		return err
	}
	profile, err := h.profiles.RetrieveByUsername(c.Context(), username)
	if err != nil {
		return err
	}
	if err := h.auth.ChangeUsername(c.Context(), profile, newUsername); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile)})
}
