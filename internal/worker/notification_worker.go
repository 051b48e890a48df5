package worker

import (
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/service"
)

// NotificationRegistry assembles the dispatch registry from the notification
// handlers. The registry is fixed for the process lifetime.
func NotificationRegistry(notificationService *service.NotificationService) events.Registry {
	if notificationService == nil {
		return events.Registry{}
	}
	return notificationService.Registry()
}
