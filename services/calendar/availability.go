package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookly/models"
	"bookly/utils"

	"go.uber.org/zap"
)

const (
	// NoSlotsMessage is returned when the sweep finds nothing bookable.
	NoSlotsMessage = "No available slots found for the requested time."

	reportDateLayout = "Monday, January 2"
	reportTopSlots   = 5
)

// AvailabilityReport is the availability check's output: the raw slots plus
// the formatted text handed to the suggestion composer.
type AvailabilityReport struct {
	Slots  []models.TimeSlot
	Report string
}

// CheckAvailability lists events in the window, degrades an unreachable
// backend to "nothing available", and renders the free slots as a numbered
// report of the top candidates.
func CheckAvailability(ctx context.Context, gw Gateway, calendarID string, windowStart, windowEnd time.Time, opts FreeSlotOptions) AvailabilityReport {
	logger := utils.GetLogger()

	events, err := gw.ListEvents(ctx, calendarID, windowStart, windowEnd)
	if err != nil {
		logger.Warn("availability check: calendar backend unreachable, degrading to no slots",
			zap.String("calendarID", calendarID), zap.Error(err))
		return AvailabilityReport{Report: NoSlotsMessage}
	}

	busy := make([]models.Interval, 0, len(events))
	for _, ev := range events {
		busy = append(busy, ev.Interval())
	}

	slots := ComputeFreeSlots(windowStart, windowEnd, busy, opts)
	if len(slots) == 0 {
		return AvailabilityReport{Report: NoSlotsMessage}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Available slots for %s:\n", windowStart.Format(reportDateLayout))
	for i, slot := range slots {
		if i >= reportTopSlots {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, slot.Display)
	}

	return AvailabilityReport{Slots: slots, Report: sb.String()}
}
