package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a calendar event organized by a tenant admin. Not to be confused
// with the domain events in the events package.
type Event struct {
	Reference string
	Created   time.Time
	Deleted   *time.Time
	Organizer *Profile
	Content   EventContent
}

// NewEvent gates organizership on the admin role.
func NewEvent(organizer *Profile, content EventContent) (*Event, error) {
	if organizer.User == nil || !organizer.User.IsAdmin() {
		return nil, ErrUserNotAdmin
	}
	return &Event{
		Reference: uuid.NewString(),
		Created:   time.Now().UTC(),
		Organizer: organizer,
		Content:   content,
	}, nil
}

// Delete marks the event logically deleted.
func (e *Event) Delete() {
	if e.Deleted == nil {
		now := time.Now().UTC()
		e.Deleted = &now
	}
}
