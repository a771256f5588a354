package calendar

import (
	"time"

	"bookly/models"
)

// slotDisplayLayout renders e.g. "Monday, January 2 at 9:00 AM".
const slotDisplayLayout = "Monday, January 2 at 3:04 PM"

// FreeSlotOptions parameterizes the free-slot sweep. Zero fields take the
// defaults below.
type FreeSlotOptions struct {
	DurationMinutes    int // length of the meeting being placed (default 60)
	GranularityMinutes int // sweep step between candidate starts (default 30)
	BusinessOpenHour   int // earliest slot start hour (default 9)
	BusinessCloseHour  int // latest slot end hour (default 17)
	MaxResults         int // cap on emitted slots (default 10)
}

func (o FreeSlotOptions) WithDefaults() FreeSlotOptions {
	if o.DurationMinutes <= 0 {
		o.DurationMinutes = 60
	}
	if o.GranularityMinutes <= 0 {
		o.GranularityMinutes = 30
	}
	if o.BusinessOpenHour <= 0 {
		o.BusinessOpenHour = 9
	}
	if o.BusinessCloseHour <= 0 {
		o.BusinessCloseHour = 17
	}
	if o.MaxResults <= 0 {
		o.MaxResults = 10
	}
	return o
}

// ComputeFreeSlots walks candidate start times forward from windowStart at
// the configured granularity and emits every candidate that falls on a
// weekday, fits inside business hours and does not overlap any busy
// interval (half-open overlap test). Output is deterministic for identical
// inputs and capped at MaxResults.
func ComputeFreeSlots(windowStart, windowEnd time.Time, busy []models.Interval, opts FreeSlotOptions) []models.TimeSlot {
	opts = opts.WithDefaults()

	duration := time.Duration(opts.DurationMinutes) * time.Minute
	granularity := time.Duration(opts.GranularityMinutes) * time.Minute

	var slots []models.TimeSlot
	current := windowStart
	for current.Before(windowEnd) && len(slots) < opts.MaxResults {
		// Skip whole weekend days rather than stepping granule by granule.
		if wd := current.Weekday(); wd == time.Saturday || wd == time.Sunday {
			current = current.AddDate(0, 0, 1)
			continue
		}

		slotEnd := current.Add(duration)
		if current.Hour() < opts.BusinessOpenHour || slotEnd.After(businessClose(current, opts.BusinessCloseHour)) {
			current = current.Add(granularity)
			continue
		}

		candidate := models.Interval{Start: current, End: slotEnd}
		if conflicts(candidate, busy) {
			current = current.Add(granularity)
			continue
		}

		slots = append(slots, models.TimeSlot{
			Start:   current,
			End:     slotEnd,
			Display: current.Format(slotDisplayLayout),
		})
		current = current.Add(granularity)
	}
	return slots
}

// businessClose is the close-of-business instant on the candidate's day.
func businessClose(t time.Time, closeHour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), closeHour, 0, 0, 0, t.Location())
}

func conflicts(candidate models.Interval, busy []models.Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
