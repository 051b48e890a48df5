package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enterprize-service/internal/config"
	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/repository/memory"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			ChangeTokenTTLSeconds: 600,
		},
	}
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.DomainEvent
	fail      error
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.DomainEvent) error {
	if d.fail != nil {
		return d.fail
	}
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) names() []events.Name {
	var result []events.Name
	for _, event := range d.published {
		result = append(result, event.EventName())
	}
	return result
}

func seedEnterprize(t *testing.T, enterprizes *memory.EnterprizeRepository, subdomain string) *domain.Enterprize {
	t.Helper()
	enterprize := domain.NewEnterprize(subdomain+" Inc", subdomain)
	require.NoError(t, enterprizes.Create(context.Background(), enterprize))
	return enterprize
}

func seedActiveUser(t *testing.T, profiles *memory.ProfileRepository, enterprize *domain.Enterprize, username, passwordHash string, role domain.Role) *domain.Profile {
	t.Helper()
	profile := domain.NewProfile(enterprize, nil)
	require.NoError(t, profile.RegisterUser(username, passwordHash))
	profile.User.Role = role
	profile.Activate()
	require.NoError(t, profiles.Save(context.Background(), profile))
	return profile
}
