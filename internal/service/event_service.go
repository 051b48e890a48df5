package service

import (
	"context"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/repository"
)

// EventService manages the enterprize calendar.
type EventService struct {
	calendar repository.EventRepository
}

// NewEventService builds the service.
func NewEventService(calendar repository.EventRepository) *EventService {
	return &EventService{calendar: calendar}
}

// Create schedules an event. Only admins may organize one.
func (s *EventService) Create(ctx context.Context, organizer *domain.Profile, content domain.EventContent) (*domain.Event, error) {
	event, err := domain.NewEvent(organizer, content)
	if err != nil {
		return nil, err
	}
	if err := s.calendar.Save(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Retrieve loads a single event by reference.
func (s *EventService) Retrieve(ctx context.Context, reference string) (*domain.Event, error) {
	return s.calendar.Retrieve(ctx, reference)
}

// Delete soft-deletes an event in the admin's enterprize. Events of other
// tenants and already deleted ones read as not found.
func (s *EventService) Delete(ctx context.Context, reference, adminUsername string) error {
	event, err := s.calendar.RetrieveByAdmin(ctx, reference, adminUsername)
	if err != nil {
		return err
	}
	if event.Deleted != nil {
		return domain.ErrEventNotFound
	}
	event.Delete()
	return s.calendar.Save(ctx, event)
}

// List returns the enterprize's live events, newest first.
func (s *EventService) List(ctx context.Context, enterprize *domain.Enterprize) ([]*domain.Event, error) {
	return s.calendar.ListForEnterprize(ctx, enterprize.Reference)
}
