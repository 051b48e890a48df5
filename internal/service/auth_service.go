package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/enterprize-service/internal/auth"
	"github.com/spec-kit/enterprize-service/internal/config"
	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/repository"
)

// AuthService coordinates login and the two credential change flows. Both
// changes are two-step: an initiation that mails a short-lived token, then a
// confirmation the HTTP boundary validates before calling the final step.
type AuthService struct {
	profiles   repository.ProfileRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
}

// AuthDependencies encapsulates repo requirements for authentication.
type AuthDependencies struct {
	ProfileRepo repository.ProfileRepository
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		profiles:   deps.ProfileRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.ChangeTokenTTL()),
		dispatcher: deps.Dispatcher,
	}
}

// Tokens exposes the token manager for boundary middleware.
func (s *AuthService) Tokens() *auth.TokenManager {
	return s.tokenMgr
}

// Authenticate verifies the credentials and returns the matching profile.
// Unknown usernames and wrong passwords are indistinguishable to the caller;
// inactive accounts are reported as such before the password is checked.
func (s *AuthService) Authenticate(ctx context.Context, credentials domain.Credentials) (*domain.Profile, error) {
	profile, err := s.profiles.RetrieveByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !profile.User.IsActive {
		return nil, domain.ErrUserInactive
	}
	if credentials.PlainPassword == nil || profile.User.PasswordHash == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(*credentials.PlainPassword, *profile.User.PasswordHash)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPasswordHash) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return profile, nil
}

// Login authenticates and issues an access token.
func (s *AuthService) Login(ctx context.Context, credentials domain.Credentials) (*domain.Profile, string, time.Time, error) {
	profile, err := s.Authenticate(ctx, credentials)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, expiresAt, err := s.tokenMgr.CreateAccessToken(profile.User.Username)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("create access token: %w", err)
	}
	return profile, token, expiresAt, nil
}

// InitiatePasswordChange issues a password change token for the profile's
// user and dispatches the notification event carrying it.
func (s *AuthService) InitiatePasswordChange(ctx context.Context, profile *domain.Profile) error {
	token, err := s.tokenMgr.CreatePasswordChangeToken(profile.User.Username)
	if err != nil {
		return fmt.Errorf("create password change token: %w", err)
	}

	event := events.UserPasswordChangeInitiated{
		Reference:           events.NewReference(),
		Username:            profile.User.Username,
		PasswordChangeToken: token,
	}
	if err := s.profiles.Save(ctx, profile, event); err != nil {
		return err
	}
	return s.dispatcher.Publish(ctx, event)
}

// ChangePassword rehashes and stores the new password. Token validation has
// already happened at the boundary.
func (s *AuthService) ChangePassword(ctx context.Context, profile *domain.Profile, newPlainPassword string) error {
	hash, err := auth.HashPassword(newPlainPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	profile.User.SetPasswordHash(hash)

	event := events.UserPasswordChanged{
		Reference: events.NewReference(),
		Username:  profile.User.Username,
	}
	if err := s.profiles.Save(ctx, profile, event); err != nil {
		return err
	}
	return s.dispatcher.Publish(ctx, event)
}

// InitiateUsernameChange checks the desired username is free, then issues a
// change token bound to both the old and the new name.
func (s *AuthService) InitiateUsernameChange(ctx context.Context, profile *domain.Profile, newUsername string) error {
	if _, err := s.profiles.RetrieveByUsername(ctx, newUsername); err == nil {
		return fmt.Errorf("username %q: %w", newUsername, domain.ErrUsernameExists)
	} else if !errors.Is(err, domain.ErrUsernameNotFound) {
		return err
	}

	token, err := s.tokenMgr.CreateUsernameChangeToken(profile.User.Username, newUsername)
	if err != nil {
		return fmt.Errorf("create username change token: %w", err)
	}

	event := events.UsernameChangeInitiated{
		Reference:           events.NewReference(),
		Username:            profile.User.Username,
		NewUsername:         newUsername,
		UsernameChangeToken: token,
	}
	if err := s.profiles.Save(ctx, profile, event); err != nil {
		return err
	}
	return s.dispatcher.Publish(ctx, event)
}

// ChangeUsername performs the rename. Availability was checked at initiation;
// a conflicting registration in between surfaces as the repository's
// uniqueness error.
func (s *AuthService) ChangeUsername(ctx context.Context, profile *domain.Profile, newUsername string) error {
	profile.User.SetUsername(newUsername)

	event := events.UsernameChanged{
		Reference:   events.NewReference(),
		NewUsername: profile.User.Username,
	}
	if err := s.profiles.Save(ctx, profile, event); err != nil {
		return err
	}
	return s.dispatcher.Publish(ctx, event)
}
