package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Handler reacts to a published domain event.
type Handler func(context.Context, DomainEvent) error

// Registry maps an event kind to its ordered handlers. It is assembled once
// at process start and never mutated afterwards.
type Registry map[Name][]Handler

// Dispatcher routes domain events to registered side-effect handlers.
type Dispatcher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

type registryDispatcher struct {
	registry Registry
	logger   *zap.Logger
	debug    bool
}

// NewDispatcher creates a synchronous in-process dispatcher. With debug set,
// publishing only traces the event and no handler executes.
func NewDispatcher(registry Registry, logger *zap.Logger, debug bool) Dispatcher {
	if registry == nil {
		registry = Registry{}
	}
	return &registryDispatcher{registry: registry, logger: logger, debug: debug}
}

// Publish invokes the handlers for the event in registration order. A handler
// error aborts dispatch of the remaining handlers for this publish.
func (d *registryDispatcher) Publish(ctx context.Context, event DomainEvent) error {
	if d.debug {
		d.logger.Info("event dispatch short-circuited",
			zap.String("event", string(event.EventName())),
			zap.Any("payload", event))
		return nil
	}

	for _, handler := range d.registry[event.EventName()] {
		if err := handler(ctx, event); err != nil {
			return fmt.Errorf("handle %s: %w", event.EventName(), err)
		}
	}
	return nil
}
