package dto

import (
	"time"

	"github.com/spec-kit/enterprize-service/internal/domain"
)

// EventCreateRequest payload for calendar events.
type EventCreateRequest struct {
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Location string    `json:"location"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// Content converts the request to the domain payload.
func (r EventCreateRequest) Content() domain.EventContent {
	return domain.EventContent{
		Title:    r.Title,
		Body:     r.Body,
		Location: r.Location,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
	}
}

// EventResponse represents a calendar event.
type EventResponse struct {
	Reference string    `json:"reference"`
	Created   time.Time `json:"created"`
	Organizer string    `json:"organizer,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Location  string    `json:"location"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
}

// NewEventResponse maps the entity.
func NewEventResponse(event *domain.Event) EventResponse {
	resp := EventResponse{
		Reference: event.Reference,
		Created:   event.Created,
		Title:     event.Content.Title,
		Body:      event.Content.Body,
		Location:  event.Content.Location,
		StartsAt:  event.Content.StartsAt,
		EndsAt:    event.Content.EndsAt,
	}
	if event.Organizer != nil {
		resp.Organizer = event.Organizer.Username()
	}
	return resp
}

// NewEventResponses maps a list of events.
func NewEventResponses(eventList []*domain.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(eventList))
	for _, event := range eventList {
		responses = append(responses, NewEventResponse(event))
	}
	return responses
}
