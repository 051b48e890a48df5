package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/enterprize-service/internal/events"
)

func TestPublishRunsHandlersInOrder(t *testing.T) {
	var calls []string
	registry := events.Registry{
		events.NameUserActivated: {
			func(context.Context, events.DomainEvent) error {
				calls = append(calls, "first")
				return nil
			},
			func(context.Context, events.DomainEvent) error {
				calls = append(calls, "second")
				return nil
			},
		},
	}
	dispatcher := events.NewDispatcher(registry, zap.NewNop(), false)

	err := dispatcher.Publish(context.Background(), events.UserActivated{Reference: events.NewReference(), Username: "u"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishAbortsOnHandlerError(t *testing.T) {
	boom := errors.New("boom")
	var secondCalled bool
	registry := events.Registry{
		events.NameUserActivated: {
			func(context.Context, events.DomainEvent) error { return boom },
			func(context.Context, events.DomainEvent) error {
				secondCalled = true
				return nil
			},
		},
	}
	dispatcher := events.NewDispatcher(registry, zap.NewNop(), false)

	err := dispatcher.Publish(context.Background(), events.UserActivated{Reference: events.NewReference(), Username: "u"})
	assert.ErrorIs(t, err, boom)
	assert.False(t, secondCalled)
}

func TestPublishWithoutHandlersIsNoop(t *testing.T) {
	dispatcher := events.NewDispatcher(events.Registry{}, zap.NewNop(), false)

	err := dispatcher.Publish(context.Background(), events.UserActivated{Reference: events.NewReference(), Username: "u"})
	assert.NoError(t, err)
}

func TestDebugShortCircuitsHandlers(t *testing.T) {
	var called bool
	registry := events.Registry{
		events.NameUserActivated: {
			func(context.Context, events.DomainEvent) error {
				called = true
				return errors.New("must not run")
			},
		},
	}
	dispatcher := events.NewDispatcher(registry, zap.NewNop(), true)

	err := dispatcher.Publish(context.Background(), events.UserActivated{Reference: events.NewReference(), Username: "u"})
	require.NoError(t, err)
	assert.False(t, called)
}
