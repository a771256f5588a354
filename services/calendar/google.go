package calendar

import (
	"context"
	"fmt"
	"time"

	"bookly/models"
	"bookly/utils"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleGateway talks to the Google Calendar API. Credentials come from a
// service-account file; the OAuth consent flow is handled outside this
// process entirely.
type GoogleGateway struct {
	svc     *gcal.Service
	timeout time.Duration
}

func NewGoogleGateway(ctx context.Context, credentialsFile string, timeout time.Duration) (*GoogleGateway, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleGateway{svc: svc, timeout: timeout}, nil
}

func (g *GoogleGateway) ListEvents(ctx context.Context, calendarID string, windowStart, windowEnd time.Time) ([]models.CalendarEvent, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	res, err := g.svc.Events.List(calendarID).
		Context(ctx).
		TimeMin(windowStart.Format(time.RFC3339)).
		TimeMax(windowEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("calendar list events: %w", err)
	}

	logger := utils.GetLogger()
	events := make([]models.CalendarEvent, 0, len(res.Items))
	for _, item := range res.Items {
		start, err := parseEventTime(item.Start)
		if err != nil {
			logger.Warn("skipping event with unparseable start",
				zap.String("eventID", item.Id), zap.Error(err))
			continue
		}
		end, err := parseEventTime(item.End)
		if err != nil {
			logger.Warn("skipping event with unparseable end",
				zap.String("eventID", item.Id), zap.Error(err))
			continue
		}
		events = append(events, models.CalendarEvent{
			ID:      item.Id,
			Summary: item.Summary,
			Start:   start,
			End:     end,
		})
	}
	return events, nil
}

func (g *GoogleGateway) CreateEvent(ctx context.Context, calendarID string, req models.BookingRequest) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	event := &gcal.Event{
		Summary:     req.Title,
		Description: req.Description,
		Start: &gcal.EventDateTime{
			DateTime: req.Start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: req.End.Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}
	created, err := g.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar insert event: %w", err)
	}
	return created.Id, nil
}

// withTimeout bounds one outbound calendar call. A non-positive duration
// leaves the caller's context untouched.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return ctx, func() {}
}

// parseEventTime handles both timed events (DateTime) and all-day events
// (Date only).
func parseEventTime(edt *gcal.EventDateTime) (time.Time, error) {
	if edt == nil {
		return time.Time{}, fmt.Errorf("event has no time")
	}
	if edt.DateTime != "" {
		return time.Parse(time.RFC3339, edt.DateTime)
	}
	return time.Parse("2006-01-02", edt.Date)
}
