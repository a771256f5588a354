// File: services/agent/pipeline.go
package agent

import (
	"context"
	"fmt"
	"time"

	"bookly/models"
	"bookly/services/calendar"
	ai "bookly/services/intelligence"
	"bookly/utils"

	"go.uber.org/zap"
)

const (
	confirmationMessage = "Please confirm if you'd like me to book this appointment."
	unableToCheckMsg    = "Unable to check calendar availability at the moment."
	genericPromptMsg    = "I'm here to help you schedule appointments. What would you like to book?"
	noPendingMsg        = "I couldn't find a pending booking to confirm. Please tell me what you'd like to schedule."
	bookingFailedMsg    = "❌ Sorry, I couldn't book the appointment. Please try again."
	apologyFormat       = "I apologize, but I encountered an error: %v. Please try again."
)

// DefaultAgentService runs the booking pipeline: a fixed linear sequence of
// stages over one mutable PipelineState per message. The propose phase runs
// understand_intent, check_calendar, suggest_slots and confirm_booking; the
// book_appointment stage runs when the caller confirms. The stage order never
// branches on the classified intent.
type DefaultAgentService struct {
	Classifier *ai.IntentClassifier
	Composer   *ai.SuggestionComposer
	Gateway    calendar.Gateway
	Store      SessionStore
	CalendarID string
	SlotOpts   calendar.FreeSlotOptions
	Clock      func() time.Time // nil means time.Now
}

func (a *DefaultAgentService) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

// ProcessMessage runs the propose phase over a fresh PipelineState and
// extracts the single most relevant field as the reply. It never returns an
// empty string and never panics out to the caller.
func (a *DefaultAgentService) ProcessMessage(ctx context.Context, sessionID, message string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("booking pipeline fault", zap.Any("error", r))
			reply = fmt.Sprintf(apologyFormat, r)
		}
	}()

	state := &models.PipelineState{UserMessage: message}

	a.understandIntent(ctx, state)
	if err := ctx.Err(); err != nil {
		// Caller went away; abandon the run after the current stage.
		return fmt.Sprintf(apologyFormat, err)
	}

	slots := a.checkCalendar(ctx, state)
	if err := ctx.Err(); err != nil {
		return fmt.Sprintf(apologyFormat, err)
	}

	a.suggestSlots(ctx, state)
	if err := ctx.Err(); err != nil {
		return fmt.Sprintf(apologyFormat, err)
	}

	a.confirmBooking(ctx, sessionID, state, slots)

	return extractResponse(state)
}

// ConfirmPending is the commit phase: it loads the stored proposal and runs
// the book_appointment stage against the slot the user picked.
func (a *DefaultAgentService) ConfirmPending(ctx context.Context, sessionID string, selection *models.SlotSelection) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("booking confirmation fault", zap.Any("error", r))
			reply = fmt.Sprintf(apologyFormat, r)
		}
	}()

	pending, err := a.Store.Get(ctx, sessionID)
	if err != nil {
		utils.GetLogger().Warn("failed to load pending booking",
			zap.String("sessionID", sessionID), zap.Error(err))
		return noPendingMsg
	}
	if pending == nil {
		return noPendingMsg
	}

	state := &models.PipelineState{
		TimePreference:      pending.TimePreference,
		MeetingPurpose:      pending.MeetingPurpose,
		ConfirmationNeeded:  true,
		ConfirmationMessage: confirmationMessage,
	}

	slot := a.chooseSlot(pending, selection)
	a.bookAppointment(ctx, state, slot)

	if state.BookingResult != bookingFailedMsg {
		if err := a.Store.Clear(ctx, sessionID); err != nil {
			utils.GetLogger().Warn("failed to clear booking session",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
	return state.BookingResult
}

// chooseSlot resolves the confirmed slot: an explicit interval wins, then an
// index into the proposed slots. Without a usable selection the historical
// placeholder (tomorrow, two hours from now, one hour long) is booked.
func (a *DefaultAgentService) chooseSlot(pending *models.PendingBooking, selection *models.SlotSelection) models.TimeSlot {
	if selection != nil {
		if selection.Start != nil && selection.End != nil {
			return models.TimeSlot{
				Start:   *selection.Start,
				End:     *selection.End,
				Display: selection.Start.Format("Monday, January 2 at 3:04 PM"),
			}
		}
		if selection.Index != nil {
			if i := *selection.Index; i >= 0 && i < len(pending.Slots) {
				return pending.Slots[i]
			}
		}
	}
	start := a.now().AddDate(0, 0, 1).Add(2 * time.Hour)
	return models.TimeSlot{
		Start:   start,
		End:     start.Add(time.Hour),
		Display: start.Format("Monday, January 2 at 3:04 PM"),
	}
}

// extractResponse picks the first present of suggestion, booking result, or
// the generic prompt — so the chat endpoint always has something to say.
func extractResponse(state *models.PipelineState) string {
	if state.SuggestionResponse != "" {
		return state.SuggestionResponse
	}
	if state.BookingResult != "" {
		return state.BookingResult
	}
	return genericPromptMsg
}
