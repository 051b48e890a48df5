package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/repository"
)

// EventRepository is the in-memory calendar event store.
type EventRepository struct {
	mu          sync.Mutex
	profiles    *ProfileRepository
	byReference map[string]*domain.Event
}

// NewEventRepository creates an empty calendar event store.
func NewEventRepository(profiles *ProfileRepository) *EventRepository {
	return &EventRepository{profiles: profiles, byReference: map[string]*domain.Event{}}
}

var _ repository.EventRepository = (*EventRepository)(nil)

func (r *EventRepository) Save(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byReference[event.Reference] = event
	return nil
}

func (r *EventRepository) Retrieve(_ context.Context, reference string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.byReference[reference]
	if !ok {
		return nil, fmt.Errorf("event %q: %w", reference, domain.ErrEventNotFound)
	}
	return event, nil
}

func (r *EventRepository) RetrieveByAdmin(ctx context.Context, reference, adminUsername string) (*domain.Event, error) {
	admin, err := r.profiles.RetrieveByUsername(ctx, adminUsername)
	if err != nil {
		return nil, fmt.Errorf("event %q: %w", reference, domain.ErrEventNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.byReference[reference]
	if !ok || !event.Organizer.Enterprize.Equal(admin.Enterprize) {
		return nil, fmt.Errorf("event %q: %w", reference, domain.ErrEventNotFound)
	}
	return event, nil
}

func (r *EventRepository) ListForEnterprize(_ context.Context, enterprizeReference string) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var eventsForTenant []*domain.Event
	for _, event := range r.byReference {
		if event.Deleted == nil && event.Organizer.Enterprize.Reference == enterprizeReference {
			eventsForTenant = append(eventsForTenant, event)
		}
	}
	sort.Slice(eventsForTenant, func(i, j int) bool {
		return eventsForTenant[i].Created.After(eventsForTenant[j].Created)
	})
	return eventsForTenant, nil
}
