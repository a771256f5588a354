// File: services/agent/stages.go
package agent

import (
	"context"
	"fmt"

	"bookly/models"
	"bookly/services/calendar"
	ai "bookly/services/intelligence"
	"bookly/utils"

	"go.uber.org/zap"
)

// Each stage reads only fields written by prior stages, writes only its own
// designated fields, and absorbs its own faults so that no stage failure
// aborts the pipeline.

// understandIntent classifies the user message. The classifier already
// degrades to the default triple on any failure.
func (a *DefaultAgentService) understandIntent(ctx context.Context, state *models.PipelineState) {
	defer stageGuard("understand_intent", func() {
		d := models.DefaultIntentResult()
		state.Intent = d.Intent
		state.TimePreference = d.TimePreference
		state.MeetingPurpose = d.MeetingPurpose
	})()

	result := a.Classifier.Classify(ctx, state.UserMessage)
	state.Intent = result.Intent
	state.TimePreference = result.TimePreference
	state.MeetingPurpose = result.MeetingPurpose
}

// checkCalendar resolves the time preference onto a concrete business-day
// window and produces the availability report. The returned slots feed the
// pending booking stored at confirmation time.
func (a *DefaultAgentService) checkCalendar(ctx context.Context, state *models.PipelineState) (slots []models.TimeSlot) {
	defer stageGuard("check_calendar", func() {
		state.AvailabilityResponse = unableToCheckMsg
		slots = nil
	})()

	opts := a.SlotOpts.WithDefaults()
	windowStart, windowEnd := ResolveWindow(state.TimePreference, a.now(),
		opts.BusinessOpenHour, opts.BusinessCloseHour)

	report := calendar.CheckAvailability(ctx, a.Gateway, a.CalendarID, windowStart, windowEnd, opts)
	state.AvailabilityResponse = report.Report
	return report.Slots
}

// suggestSlots renders the availability report conversationally. The
// composer degrades to its fixed fallback sentence on any failure.
func (a *DefaultAgentService) suggestSlots(ctx context.Context, state *models.PipelineState) {
	defer stageGuard("suggest_slots", func() {
		state.SuggestionResponse = ai.ComposerFallback
	})()

	state.SuggestionResponse = a.Composer.Compose(ctx, state.AvailabilityResponse, state.TimePreference)
}

// confirmBooking marks the state as awaiting confirmation and persists the
// proposal so a later confirm call can commit it. A store failure is logged
// and absorbed: the user still gets the suggestion, only the confirm step
// will miss its session.
func (a *DefaultAgentService) confirmBooking(ctx context.Context, sessionID string, state *models.PipelineState, slots []models.TimeSlot) {
	defer stageGuard("confirm_booking", func() {})()

	state.ConfirmationNeeded = true
	state.ConfirmationMessage = confirmationMessage

	pending := &models.PendingBooking{
		SessionID:      sessionID,
		MeetingPurpose: state.MeetingPurpose,
		TimePreference: state.TimePreference,
		Slots:          slots,
		CreatedAt:      a.now(),
	}
	if err := a.Store.Set(ctx, sessionID, pending); err != nil {
		utils.GetLogger().Warn("failed to store pending booking",
			zap.String("sessionID", sessionID), zap.Error(err))
	}
}

// bookAppointment commits the slot through the calendar gateway and writes a
// user-facing result string either way.
func (a *DefaultAgentService) bookAppointment(ctx context.Context, state *models.PipelineState, slot models.TimeSlot) {
	defer stageGuard("book_appointment", func() {
		state.BookingResult = bookingFailedMsg
	})()

	title := state.MeetingPurpose
	if title == "" {
		title = "Meeting"
	}
	req := models.BookingRequest{
		Start:       slot.Start,
		End:         slot.End,
		Title:       title,
		Description: "Booked via AI assistant",
	}

	eventID, err := a.Gateway.CreateEvent(ctx, a.CalendarID, req)
	if err != nil {
		utils.GetLogger().Warn("calendar create event failed", zap.Error(err))
		state.BookingResult = bookingFailedMsg
		return
	}

	utils.GetLogger().Info("appointment booked",
		zap.String("eventID", eventID), zap.String("title", title))
	state.BookingResult = fmt.Sprintf("✅ Successfully booked: %s for %s", title, slot.Display)
}

// stageGuard recovers a stage-local panic and applies that stage's fallback.
func stageGuard(name string, onFault func()) func() {
	return func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("pipeline stage panic",
				zap.String("stage", name), zap.Any("error", r))
			onFault()
		}
	}
}
