package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/repository/memory"
	"github.com/spec-kit/enterprize-service/internal/service"
)

func newProfileFixture(t *testing.T) (*service.ProfileService, *memory.ProfileRepository, *recordingDispatcher, *domain.Enterprize) {
	t.Helper()
	enterprizes := memory.NewEnterprizeRepository()
	profiles := memory.NewProfileRepository()
	dispatcher := &recordingDispatcher{}
	svc := service.NewProfileService(service.ProfileDependencies{
		ProfileRepo: profiles,
		Dispatcher:  dispatcher,
	})
	enterprize := seedEnterprize(t, enterprizes, "acme")
	return svc, profiles, dispatcher, enterprize
}

func TestInviteRequiresAdmin(t *testing.T) {
	svc, profiles, _, enterprize := newProfileFixture(t)
	seedActiveUser(t, profiles, enterprize, "user@acme.test", "hash", domain.RoleUser)

	_, err := svc.Invite(context.Background(), "new@acme.test", "user@acme.test")
	assert.ErrorIs(t, err, domain.ErrUserNotAdmin)
}

func TestInviteCreatesPreregisteredProfile(t *testing.T) {
	svc, profiles, dispatcher, enterprize := newProfileFixture(t)
	seedActiveUser(t, profiles, enterprize, "admin@acme.test", "hash", domain.RoleAdmin)

	invited, err := svc.Invite(context.Background(), "New@acme.test", "admin@acme.test")
	require.NoError(t, err)

	assert.Equal(t, "new@acme.test", invited.User.Username)
	assert.Nil(t, invited.User.PasswordHash)
	assert.NotNil(t, invited.User.Invited)
	assert.True(t, invited.Enterprize.Equal(enterprize))

	require.Equal(t, []events.Name{events.NameUserInvited}, dispatcher.names())
	event := dispatcher.published[0].(events.UserInvited)
	assert.Equal(t, "new@acme.test", event.InvitedEmailAddress)
	assert.Equal(t, "admin@acme.test", event.AdminUsername)

	audit := profiles.AuditLog(invited.Reference)
	require.Len(t, audit, 1)
	assert.Equal(t, events.NameUserInvited, audit[0].Name)
}

func TestInviteActiveUserConflicts(t *testing.T) {
	svc, profiles, _, enterprize := newProfileFixture(t)
	seedActiveUser(t, profiles, enterprize, "admin@acme.test", "hash", domain.RoleAdmin)
	seedActiveUser(t, profiles, enterprize, "member@acme.test", "hash", domain.RoleUser)

	_, err := svc.Invite(context.Background(), "member@acme.test", "admin@acme.test")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestInviteReinvitesInactiveRegisteredUser(t *testing.T) {
	svc, profiles, dispatcher, enterprize := newProfileFixture(t)
	seedActiveUser(t, profiles, enterprize, "admin@acme.test", "hash", domain.RoleAdmin)

	// Registered with a password but never activated.
	registered := domain.NewProfile(enterprize, nil)
	require.NoError(t, registered.RegisterUser("member@acme.test", "hash"))
	require.NoError(t, profiles.Save(context.Background(), registered))

	invited, err := svc.Invite(context.Background(), "member@acme.test", "admin@acme.test")
	require.NoError(t, err)

	assert.Equal(t, registered.Reference, invited.Reference)
	assert.NotNil(t, invited.User.Invited)
	require.NotNil(t, invited.User.PasswordHash)
	require.Equal(t, []events.Name{events.NameUserInvited}, dispatcher.names())
}

func TestUpdateAppliesPatch(t *testing.T) {
	svc, profiles, _, enterprize := newProfileFixture(t)
	seedActiveUser(t, profiles, enterprize, "jane@acme.test", "hash", domain.RoleUser)

	first := "Jane"
	town := "Berlin"
	updated, err := svc.Update(context.Background(), "jane@acme.test", domain.ProfilePatch{
		FirstName: &first,
		Town:      &town,
		Skills:    []string{"go"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane", updated.FullName.FirstName)
	assert.Equal(t, "Berlin", *updated.Contact.Address.Town)
	assert.Equal(t, []string{"go"}, updated.Skills)
}

func TestUpdateNonPublicAppliesNotes(t *testing.T) {
	svc, profiles, _, enterprize := newProfileFixture(t)
	seedActiveUser(t, profiles, enterprize, "admin@acme.test", "hash", domain.RoleAdmin)
	profile := seedActiveUser(t, profiles, enterprize, "jane@acme.test", "hash", domain.RoleUser)

	status := domain.LegalStatusSickLeave
	updated, err := svc.UpdateNonPublic(context.Background(), profile.Reference, "admin@acme.test", domain.EnterprizeNotesPatch{
		LegalStatus: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LegalStatusSickLeave, *updated.Notes.LegalStatus)
}

func TestRetrieveByReferenceForAdminIncludesNotes(t *testing.T) {
	svc, profiles, _, enterprize := newProfileFixture(t)
	seedActiveUser(t, profiles, enterprize, "admin@acme.test", "hash", domain.RoleAdmin)
	profile := seedActiveUser(t, profiles, enterprize, "jane@acme.test", "hash", domain.RoleUser)

	status := domain.LegalStatusSickLeave
	_, err := svc.UpdateNonPublic(context.Background(), profile.Reference, "admin@acme.test", domain.EnterprizeNotesPatch{
		LegalStatus: &status,
	})
	require.NoError(t, err)

	retrieved, err := svc.RetrieveByReferenceForAdmin(context.Background(), profile.Reference, "admin@acme.test")
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.test", retrieved.User.Username)
	require.NotNil(t, retrieved.Notes.LegalStatus)
	assert.Equal(t, domain.LegalStatusSickLeave, *retrieved.Notes.LegalStatus)
}

func TestRetrieveByReferenceForAdminRequiresAdmin(t *testing.T) {
	svc, profiles, _, enterprize := newProfileFixture(t)
	seedActiveUser(t, profiles, enterprize, "member@acme.test", "hash", domain.RoleUser)
	profile := seedActiveUser(t, profiles, enterprize, "jane@acme.test", "hash", domain.RoleUser)

	_, err := svc.RetrieveByReferenceForAdmin(context.Background(), profile.Reference, "member@acme.test")
	assert.ErrorIs(t, err, domain.ErrUserNotAdmin)
}

func TestRetrieveByReferenceForAdminHidesOtherTenants(t *testing.T) {
	svc, profiles, _, enterprize := newProfileFixture(t)
	otherEnterprizes := memory.NewEnterprizeRepository()
	other := seedEnterprize(t, otherEnterprizes, "other")

	seedActiveUser(t, profiles, enterprize, "admin@acme.test", "hash", domain.RoleAdmin)
	foreign := seedActiveUser(t, profiles, other, "foreign@other.test", "hash", domain.RoleUser)

	_, err := svc.RetrieveByReferenceForAdmin(context.Background(), foreign.Reference, "admin@acme.test")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	status := domain.LegalStatusSickLeave
	_, err = svc.UpdateNonPublic(context.Background(), foreign.Reference, "admin@acme.test", domain.EnterprizeNotesPatch{
		LegalStatus: &status,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPhotoUploadAndDelete(t *testing.T) {
	svc, profiles, _, enterprize := newProfileFixture(t)
	profile := seedActiveUser(t, profiles, enterprize, "jane@acme.test", "hash", domain.RoleUser)

	url, err := svc.UploadPhoto(context.Background(), "jane@acme.test", strings.NewReader("image-bytes"), "image/png")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	require.NotNil(t, profile.PhotoURL)
	assert.Equal(t, url, *profile.PhotoURL)

	require.NoError(t, svc.DeletePhoto(context.Background(), "jane@acme.test"))
	assert.Nil(t, profile.PhotoURL)
}

func TestListForAdminScopesToTenantAndRole(t *testing.T) {
	svc, profiles, _, enterprize := newProfileFixture(t)
	otherEnterprizes := memory.NewEnterprizeRepository()
	other := seedEnterprize(t, otherEnterprizes, "other")

	seedActiveUser(t, profiles, enterprize, "admin@acme.test", "hash", domain.RoleAdmin)
	seedActiveUser(t, profiles, enterprize, "member@acme.test", "hash", domain.RoleUser)
	seedActiveUser(t, profiles, other, "foreign@other.test", "hash", domain.RoleUser)

	listed, err := svc.ListForAdmin(context.Background(), "admin@acme.test")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "member@acme.test", listed[0].User.Username)
}

func TestDashboardCountsRegistrationsAndInvitations(t *testing.T) {
	svc, profiles, _, enterprize := newProfileFixture(t)
	seedActiveUser(t, profiles, enterprize, "admin@acme.test", "hash", domain.RoleAdmin)
	seedActiveUser(t, profiles, enterprize, "member@acme.test", "hash", domain.RoleUser)

	// One invited profile that accepted, one still pending.
	accepted := domain.NewProfile(enterprize, nil)
	require.NoError(t, accepted.PreregisterUsername("accepted@acme.test"))
	accepted.User.Invite()
	accepted.User.SetPasswordHash("hash")
	accepted.Activate()
	require.NoError(t, profiles.Save(context.Background(), accepted))

	pending := domain.NewProfile(enterprize, nil)
	require.NoError(t, pending.PreregisterUsername("pending@acme.test"))
	pending.User.Invite()
	require.NoError(t, profiles.Save(context.Background(), pending))

	stats, err := svc.Dashboard(context.Background(), "admin@acme.test")
	require.NoError(t, err)

	// admin, member, accepted have password hashes; pending has none.
	assert.Equal(t, 3, stats.TotalRegistrations)
	assert.Equal(t, 3, stats.ActiveRegistrations)
	assert.Equal(t, 2, stats.TotalInvitations)
	assert.Equal(t, 1, stats.AcceptedInvitations)
}
