package calendar

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"bookly/models"
)

// StubGateway is the capability-degraded stand-in used when no calendar
// credentials are configured. It answers every list with one fixed busy
// interval (10:00-11:00 on the next business day) and accepts every create
// with a synthetic incrementing id, so the rest of the system never has to
// special-case "no calendar available".
type StubGateway struct {
	clock   func() time.Time
	counter atomic.Uint64
}

// NewStubGateway builds a stand-in gateway. A nil clock uses time.Now.
func NewStubGateway(clock func() time.Time) *StubGateway {
	if clock == nil {
		clock = time.Now
	}
	return &StubGateway{clock: clock}
}

func (s *StubGateway) ListEvents(ctx context.Context, calendarID string, windowStart, windowEnd time.Time) ([]models.CalendarEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	busy := s.busyInterval()
	return []models.CalendarEvent{
		{
			ID:      "stub-busy-1",
			Summary: "Existing Meeting",
			Start:   busy.Start,
			End:     busy.End,
		},
	}, nil
}

func (s *StubGateway) CreateEvent(ctx context.Context, calendarID string, req models.BookingRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n := s.counter.Add(1)
	return fmt.Sprintf("stub-event-%d", n), nil
}

// busyInterval is 10:00-11:00 on the next business day after the stub's
// current time. Deterministic for a fixed clock.
func (s *StubGateway) busyInterval() models.Interval {
	day := s.clock().AddDate(0, 0, 1)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, day.Location())
	return models.Interval{Start: start, End: start.Add(time.Hour)}
}
