package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enterprize-service/internal/auth"
	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/repository/memory"
	"github.com/spec-kit/enterprize-service/internal/service"
)

func newAuthFixture(t *testing.T) (*service.AuthService, *memory.ProfileRepository, *recordingDispatcher, *domain.Enterprize) {
	t.Helper()
	enterprizes := memory.NewEnterprizeRepository()
	profiles := memory.NewProfileRepository()
	dispatcher := &recordingDispatcher{}
	svc := service.NewAuthService(testConfig(), service.AuthDependencies{
		ProfileRepo: profiles,
		Dispatcher:  dispatcher,
	})
	enterprize := seedEnterprize(t, enterprizes, "acme")
	return svc, profiles, dispatcher, enterprize
}

func seedLogin(t *testing.T, profiles *memory.ProfileRepository, enterprize *domain.Enterprize, username, password string) *domain.Profile {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return seedActiveUser(t, profiles, enterprize, username, hash, domain.RoleUser)
}

func TestAuthenticateUnknownUsername(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Authenticate(context.Background(), credentials("ghost@acme.test", "s3cret"))
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, profiles, _, enterprize := newAuthFixture(t)
	seedLogin(t, profiles, enterprize, "jane@acme.test", "s3cret")

	_, err := svc.Authenticate(context.Background(), credentials("jane@acme.test", "wrong"))
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateInactiveBeforePasswordCheck(t *testing.T) {
	svc, profiles, _, enterprize := newAuthFixture(t)
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	profile := domain.NewProfile(enterprize, nil)
	require.NoError(t, profile.RegisterUser("jane@acme.test", hash))
	require.NoError(t, profiles.Save(context.Background(), profile))

	// Even a wrong password reports inactive, not invalid credentials.
	_, err = svc.Authenticate(context.Background(), credentials("jane@acme.test", "wrong"))
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthenticateMalformedStoredHash(t *testing.T) {
	svc, profiles, _, enterprize := newAuthFixture(t)
	seedActiveUser(t, profiles, enterprize, "jane@acme.test", "not-a-phc-string", domain.RoleUser)

	_, err := svc.Authenticate(context.Background(), credentials("jane@acme.test", "s3cret"))
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginIssuesDecodableAccessToken(t *testing.T) {
	svc, profiles, _, enterprize := newAuthFixture(t)
	seedLogin(t, profiles, enterprize, "jane@acme.test", "s3cret")

	profile, token, expiresAt, err := svc.Login(context.Background(), credentials("jane@acme.test", "s3cret"))
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.test", profile.User.Username)
	assert.False(t, expiresAt.IsZero())

	username, err := svc.Tokens().DecodeAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.test", username)
}

func TestPasswordChangeFlow(t *testing.T) {
	svc, profiles, dispatcher, enterprize := newAuthFixture(t)
	profile := seedLogin(t, profiles, enterprize, "jane@acme.test", "oldpass")

	require.NoError(t, svc.InitiatePasswordChange(context.Background(), profile))
	require.Equal(t, []events.Name{events.NameUserPasswordChangeInitiated}, dispatcher.names())

	initiated := dispatcher.published[0].(events.UserPasswordChangeInitiated)
	username, err := svc.Tokens().DecodePasswordChangeToken(initiated.PasswordChangeToken)
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.test", username)

	require.NoError(t, svc.ChangePassword(context.Background(), profile, "newpass"))

	_, err = svc.Authenticate(context.Background(), credentials("jane@acme.test", "oldpass"))
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Authenticate(context.Background(), credentials("jane@acme.test", "newpass"))
	assert.NoError(t, err)

	assert.Equal(t, []events.Name{
		events.NameUserPasswordChangeInitiated,
		events.NameUserPasswordChanged,
	}, dispatcher.names())
}

func TestInitiateUsernameChangeRejectsTakenName(t *testing.T) {
	svc, profiles, _, enterprize := newAuthFixture(t)
	profile := seedLogin(t, profiles, enterprize, "jane@acme.test", "s3cret")
	seedLogin(t, profiles, enterprize, "taken@acme.test", "s3cret")

	err := svc.InitiateUsernameChange(context.Background(), profile, "TAKEN@acme.test")
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
}

func TestUsernameChangeFlow(t *testing.T) {
	svc, profiles, dispatcher, enterprize := newAuthFixture(t)
	profile := seedLogin(t, profiles, enterprize, "jane@acme.test", "s3cret")

	require.NoError(t, svc.InitiateUsernameChange(context.Background(), profile, "janet@acme.test"))
	initiated := dispatcher.published[0].(events.UsernameChangeInitiated)
	assert.Equal(t, "jane@acme.test", initiated.Username)
	assert.Equal(t, "janet@acme.test", initiated.NewUsername)

	oldName, newName, err := svc.Tokens().DecodeUsernameChangeToken(initiated.UsernameChangeToken)
	require.NoError(t, err)

	require.NoError(t, svc.ChangeUsername(context.Background(), profile, newName))
	assert.Equal(t, "janet@acme.test", profile.User.Username)
	assert.Equal(t, "jane@acme.test", oldName)

	_, err = profiles.RetrieveByUsername(context.Background(), "jane@acme.test")
	assert.ErrorIs(t, err, domain.ErrUsernameNotFound)
	found, err := profiles.RetrieveByUsername(context.Background(), "janet@acme.test")
	require.NoError(t, err)
	assert.Equal(t, profile.Reference, found.Reference)
}
