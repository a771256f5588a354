package models

import "time"

// Intent is the classified purpose of a user's message.
type Intent string

const (
	IntentBookAppointment   Intent = "book_appointment"
	IntentCheckAvailability Intent = "check_availability"
	IntentReschedule        Intent = "reschedule"
	IntentCancel            Intent = "cancel"
	IntentGeneralInquiry    Intent = "general_inquiry"
)

// ParseIntent maps a raw label to a known intent. Unknown labels fall back
// to book_appointment, mirroring the classifier's defaults.
func ParseIntent(raw string) Intent {
	switch Intent(raw) {
	case IntentBookAppointment, IntentCheckAvailability, IntentReschedule,
		IntentCancel, IntentGeneralInquiry:
		return Intent(raw)
	default:
		return IntentBookAppointment
	}
}

// IntentResult is the structured output of the intent classifier.
type IntentResult struct {
	Intent         Intent `json:"intent"`
	TimePreference string `json:"time_preference"`
	MeetingPurpose string `json:"meeting_purpose"`
}

// DefaultIntentResult is the triple substituted whenever classification
// fails for any reason.
func DefaultIntentResult() IntentResult {
	return IntentResult{
		Intent:         IntentBookAppointment,
		TimePreference: "none",
		MeetingPurpose: "Meeting",
	}
}

// PipelineState is the single mutable record threaded through the booking
// pipeline's stages. A fresh state is created per incoming chat message and
// discarded once the response is extracted; every field is zero until the
// stage that produces it has run.
type PipelineState struct {
	UserMessage          string `json:"user_message"`
	Intent               Intent `json:"intent,omitempty"`
	TimePreference       string `json:"time_preference,omitempty"`
	MeetingPurpose       string `json:"meeting_purpose,omitempty"`
	AvailabilityResponse string `json:"availability_response,omitempty"`
	SuggestionResponse   string `json:"suggestion_response,omitempty"`
	ConfirmationNeeded   bool   `json:"confirmation_needed,omitempty"`
	ConfirmationMessage  string `json:"confirmation_message,omitempty"`
	BookingResult        string `json:"booking_result,omitempty"`
}

// PendingBooking is the proposal persisted between the propose phase and an
// external confirmation. It carries the slots that were offered so the commit
// phase can book the one the user actually picked.
type PendingBooking struct {
	SessionID      string     `json:"session_id"`
	MeetingPurpose string     `json:"meeting_purpose"`
	TimePreference string     `json:"time_preference"`
	Slots          []TimeSlot `json:"slots,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
