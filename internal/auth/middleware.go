package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/repository"
	"github.com/spec-kit/enterprize-service/pkg/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller: the profile whose username
// the access token was issued for.
type Principal struct {
	Profile *domain.Profile
}

// Username returns the principal's username.
func (p *Principal) Username() string {
	return p.Profile.User.Username
}

// IsAdmin reports whether the principal holds an admin role.
func (p *Principal) IsAdmin() bool {
	return p.Profile.User.IsAdmin()
}

// Middleware validates bearer access tokens and loads principals.
type Middleware struct {
	tokens   *TokenManager
	profiles repository.ProfileRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, profiles repository.ProfileRepository) *Middleware {
	return &Middleware{tokens: tokens, profiles: profiles}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return errorutil.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return errorutil.NewUnauthorized("invalid authorization header")
	}

	username, err := m.tokens.DecodeAccessToken(parts[1])
	if err != nil {
		return errorutil.NewUnauthorized("invalid token")
	}

	profile, err := m.profiles.RetrieveByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameNotFound) {
			return errorutil.NewUnauthorized("unknown user")
		}
		return errorutil.MapError(err)
	}
	if !profile.User.IsActive {
		return errorutil.NewUnauthorized("user inactive")
	}

	c.Locals(principalKey, &Principal{Profile: profile})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
