package calendar

import (
	"context"
	"time"

	"bookly/models"
)

// Gateway abstracts the calendar backend. The booking pipeline only ever
// talks to this interface; the concrete variant (Google or stub) is chosen
// once at construction time, never discovered at call time.
//
// Callers must treat any error as recoverable: log it and degrade to a
// user-facing fallback, never abort the request.
type Gateway interface {
	// ListEvents returns the events in [windowStart, windowEnd), ordered by
	// start time.
	ListEvents(ctx context.Context, calendarID string, windowStart, windowEnd time.Time) ([]models.CalendarEvent, error)

	// CreateEvent inserts an event and returns the backend's opaque event id.
	CreateEvent(ctx context.Context, calendarID string, req models.BookingRequest) (string, error)
}
