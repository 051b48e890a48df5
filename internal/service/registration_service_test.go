package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/repository/memory"
	"github.com/spec-kit/enterprize-service/internal/service"
)

func newRegistrationFixture(t *testing.T) (*service.RegistrationService, *memory.EnterprizeRepository, *memory.ProfileRepository, *recordingDispatcher) {
	t.Helper()
	enterprizes := memory.NewEnterprizeRepository()
	profiles := memory.NewProfileRepository()
	dispatcher := &recordingDispatcher{}
	svc := service.NewRegistrationService(testConfig(), service.RegistrationDependencies{
		EnterprizeRepo: enterprizes,
		ProfileRepo:    profiles,
		Dispatcher:     dispatcher,
	})
	return svc, enterprizes, profiles, dispatcher
}

func credentials(username, password string) domain.Credentials {
	return domain.Credentials{Username: username, PlainPassword: &password}
}

func TestRegisterCreatesInactiveUser(t *testing.T) {
	svc, enterprizes, profiles, dispatcher := newRegistrationFixture(t)
	seedEnterprize(t, enterprizes, "acme")

	profile, err := svc.Register(context.Background(), credentials("Jane@acme.test", "s3cret"), "acme")
	require.NoError(t, err)

	assert.Equal(t, "jane@acme.test", profile.User.Username)
	assert.False(t, profile.User.IsActive)
	require.NotNil(t, profile.User.PasswordHash)

	require.Equal(t, []events.Name{events.NameUserRegistered}, dispatcher.names())
	registered := dispatcher.published[0].(events.UserRegistered)
	assert.NotEmpty(t, registered.ActivationCode)

	audit := profiles.AuditLog(profile.Reference)
	require.Len(t, audit, 1)
	assert.Equal(t, events.NameUserRegistered, audit[0].Name)
}

func TestRegisterUnknownSubdomainFails(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture(t)

	_, err := svc.Register(context.Background(), credentials("jane@acme.test", "s3cret"), "nowhere")
	assert.ErrorIs(t, err, domain.ErrEnterprizeNotFound)
}

func TestRegisterActiveUsernameConflicts(t *testing.T) {
	svc, enterprizes, profiles, _ := newRegistrationFixture(t)
	enterprize := seedEnterprize(t, enterprizes, "acme")
	seedActiveUser(t, profiles, enterprize, "jane@acme.test", "hash", domain.RoleUser)

	_, err := svc.Register(context.Background(), credentials("JANE@acme.test", "s3cret"), "acme")
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
}

func TestRegisterInactiveWithPasswordIsRejected(t *testing.T) {
	svc, enterprizes, _, _ := newRegistrationFixture(t)
	seedEnterprize(t, enterprizes, "acme")

	_, err := svc.Register(context.Background(), credentials("jane@acme.test", "s3cret"), "acme")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), credentials("jane@acme.test", "other"), "acme")
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestRegisterCompletesInvitation(t *testing.T) {
	svc, enterprizes, profiles, _ := newRegistrationFixture(t)
	enterprize := seedEnterprize(t, enterprizes, "acme")

	invited := domain.NewProfile(enterprize, nil)
	require.NoError(t, invited.PreregisterUsername("invitee@acme.test"))
	invited.User.Invite()
	require.NoError(t, profiles.Save(context.Background(), invited))

	profile, err := svc.Register(context.Background(), credentials("Invitee@acme.test", "s3cret"), "acme")
	require.NoError(t, err)

	assert.Equal(t, invited.Reference, profile.Reference)
	require.NotNil(t, profile.User.PasswordHash)
	assert.False(t, profile.User.IsActive)
	assert.NotNil(t, profile.User.Invited)
}

func TestActivateTransitionsExactlyOnce(t *testing.T) {
	svc, enterprizes, _, dispatcher := newRegistrationFixture(t)
	seedEnterprize(t, enterprizes, "acme")

	_, err := svc.Register(context.Background(), credentials("jane@acme.test", "s3cret"), "acme")
	require.NoError(t, err)
	code := dispatcher.published[0].(events.UserRegistered).ActivationCode

	profile, err := svc.Activate(context.Background(), code)
	require.NoError(t, err)
	assert.True(t, profile.User.IsActive)
	assert.NotNil(t, profile.User.Activated)

	_, err = svc.Activate(context.Background(), code)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyActive)
}

func TestActivateRejectsGarbageToken(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture(t)

	_, err := svc.Activate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidActivationCode)
}

func TestRegisterActivateAuthenticateFlow(t *testing.T) {
	svc, enterprizes, profiles, dispatcher := newRegistrationFixture(t)
	seedEnterprize(t, enterprizes, "acme")

	authSvc := service.NewAuthService(testConfig(), service.AuthDependencies{
		ProfileRepo: profiles,
		Dispatcher:  dispatcher,
	})

	_, err := svc.Register(context.Background(), credentials("jane@acme.test", "s3cret"), "acme")
	require.NoError(t, err)

	// Authentication is refused until activation.
	_, err = authSvc.Authenticate(context.Background(), credentials("jane@acme.test", "s3cret"))
	assert.ErrorIs(t, err, domain.ErrUserInactive)

	code := dispatcher.published[0].(events.UserRegistered).ActivationCode
	_, err = svc.Activate(context.Background(), code)
	require.NoError(t, err)

	profile, err := authSvc.Authenticate(context.Background(), credentials("JANE@acme.test", "s3cret"))
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.test", profile.User.Username)
}
