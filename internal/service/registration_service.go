package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/enterprize-service/internal/auth"
	"github.com/spec-kit/enterprize-service/internal/config"
	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/repository"
)

// RegistrationService runs the signup and activation state machine. A
// username moves through at most four states: unknown, preregistered
// (invited, no password), registered inactive, and active.
type RegistrationService struct {
	enterprizes repository.EnterprizeRepository
	profiles    repository.ProfileRepository
	tokenMgr    *auth.TokenManager
	dispatcher  events.Dispatcher
}

// RegistrationDependencies encapsulates repo requirements for registration.
type RegistrationDependencies struct {
	EnterprizeRepo repository.EnterprizeRepository
	ProfileRepo    repository.ProfileRepository
	Dispatcher     events.Dispatcher
}

// NewRegistrationService builds the service.
func NewRegistrationService(cfg config.Config, deps RegistrationDependencies) *RegistrationService {
	return &RegistrationService{
		enterprizes: deps.EnterprizeRepo,
		profiles:    deps.ProfileRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.ChangeTokenTTL()),
		dispatcher:  deps.Dispatcher,
	}
}

// Register creates or completes a registration inside the tenant named by the
// subdomain. An unknown username gets a fresh profile; a preregistered one
// (invitation pending, no password yet) gets the password attached; an active
// one is a conflict; an inactive one with a password must activate first.
func (s *RegistrationService) Register(ctx context.Context, credentials domain.Credentials, subdomain string) (*domain.Profile, error) {
	if credentials.PlainPassword == nil {
		return nil, domain.ErrInvalidCredentials
	}
	enterprize, err := s.enterprizes.RetrieveBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(*credentials.PlainPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile, err := s.profiles.RetrieveByUsername(ctx, credentials.Username)
	switch {
	case errors.Is(err, domain.ErrUsernameNotFound):
		profile = domain.NewProfile(enterprize, nil)
		if err := profile.RegisterUser(credentials.Username, hash); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case profile.User.IsActive:
		return nil, fmt.Errorf("username %q: %w", credentials.Username, domain.ErrUsernameExists)
	case profile.User.PasswordHash == nil:
		// Invitation completion: the username was reserved by an admin.
		profile.User.SetPasswordHash(hash)
	default:
		return nil, domain.ErrUserInactive
	}

	activationToken, err := s.tokenMgr.CreateActivationToken(profile.User.Username)
	if err != nil {
		return nil, fmt.Errorf("create activation token: %w", err)
	}

	event := profile.Registered(activationToken)
	if err := s.profiles.Save(ctx, profile, event); err != nil {
		return nil, err
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		return nil, err
	}
	return profile, nil
}

// Activate redeems an activation token. Tokens stay valid indefinitely, but
// an already active account cannot be activated twice.
func (s *RegistrationService) Activate(ctx context.Context, activationToken string) (*domain.Profile, error) {
	username, err := s.tokenMgr.DecodeActivationToken(activationToken)
	if err != nil {
		return nil, domain.ErrInvalidActivationCode
	}

	profile, err := s.profiles.RetrieveByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile.User.IsActive {
		return nil, domain.ErrUserAlreadyActive
	}

	event := profile.Activate()
	if err := s.profiles.Save(ctx, profile, event); err != nil {
		return nil, err
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		return nil, err
	}
	return profile, nil
}
