package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/repository/memory"
	"github.com/spec-kit/enterprize-service/internal/service"
)

func newEventFixture(t *testing.T) (*service.EventService, *memory.ProfileRepository, *domain.Enterprize, *domain.Enterprize) {
	t.Helper()
	enterprizes := memory.NewEnterprizeRepository()
	profiles := memory.NewProfileRepository()
	svc := service.NewEventService(memory.NewEventRepository(profiles))
	return svc, profiles, seedEnterprize(t, enterprizes, "acme"), seedEnterprize(t, enterprizes, "other")
}

func standupContent() domain.EventContent {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return domain.EventContent{
		Title:    "standup",
		Body:     "daily sync",
		Location: "room 1",
		StartsAt: start,
		EndsAt:   start.Add(30 * time.Minute),
	}
}

func TestCreateEventRequiresAdmin(t *testing.T) {
	svc, profiles, acme, _ := newEventFixture(t)
	plain := seedActiveUser(t, profiles, acme, "user@acme.test", "hash", domain.RoleUser)

	_, err := svc.Create(context.Background(), plain, standupContent())
	assert.ErrorIs(t, err, domain.ErrUserNotAdmin)
}

func TestDeleteEventConflatesWrongTenantWithNotFound(t *testing.T) {
	svc, profiles, acme, other := newEventFixture(t)
	admin := seedActiveUser(t, profiles, acme, "admin@acme.test", "hash", domain.RoleAdmin)
	seedActiveUser(t, profiles, other, "admin@other.test", "hash", domain.RoleAdmin)

	event, err := svc.Create(context.Background(), admin, standupContent())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), event.Reference, "admin@other.test")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	require.NoError(t, svc.Delete(context.Background(), event.Reference, "admin@acme.test"))
	err = svc.Delete(context.Background(), event.Reference, "admin@acme.test")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestListEventsSkipsDeleted(t *testing.T) {
	svc, profiles, acme, _ := newEventFixture(t)
	admin := seedActiveUser(t, profiles, acme, "admin@acme.test", "hash", domain.RoleAdmin)

	kept, err := svc.Create(context.Background(), admin, standupContent())
	require.NoError(t, err)
	dropped, err := svc.Create(context.Background(), admin, standupContent())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), dropped.Reference, "admin@acme.test"))

	listed, err := svc.List(context.Background(), acme)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, kept.Reference, listed[0].Reference)
}
