package models

import "time"

// Interval is a half-open [Start, End) time range used for conflict checks.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the two half-open intervals intersect.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// TimeSlot is a candidate open interval eligible for booking. Immutable once
// produced by the free-slot calculator.
type TimeSlot struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Display string    `json:"display"` // e.g. "Monday, January 2 at 9:00 AM"
}

// CalendarEvent is an existing event as returned by the calendar backend.
// The core only reads events to compute conflicts, never mutates them.
type CalendarEvent struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// Interval returns the busy interval blocked by the event.
func (e CalendarEvent) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// BookingRequest is the payload handed to the calendar gateway when
// committing an appointment.
type BookingRequest struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}
