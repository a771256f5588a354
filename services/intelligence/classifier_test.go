package ai

import (
	"context"
	"errors"
	"testing"

	"bookly/models"

	"github.com/stretchr/testify/assert"
)

type fakeGenerator struct {
	response string
	err      error
}

func (f fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func TestClassifyFailureYieldsExactDefaultTriple(t *testing.T) {
	c := &IntentClassifier{Gen: fakeGenerator{err: errors.New("timeout")}}

	result := c.Classify(context.Background(), "book me something")
	assert.Equal(t, models.IntentResult{
		Intent:         models.IntentBookAppointment,
		TimePreference: "none",
		MeetingPurpose: "Meeting",
	}, result)
}

func TestClassifyParsesJSONResponse(t *testing.T) {
	c := &IntentClassifier{Gen: fakeGenerator{
		response: `{"intent": "check_availability", "time_preference": "tomorrow afternoon", "meeting_purpose": "Design review"}`,
	}}

	result := c.Classify(context.Background(), "any free time tomorrow afternoon for a design review?")
	assert.Equal(t, models.IntentCheckAvailability, result.Intent)
	assert.Equal(t, "tomorrow afternoon", result.TimePreference)
	assert.Equal(t, "Design review", result.MeetingPurpose)
}

func TestClassifyParsesFencedJSONResponse(t *testing.T) {
	c := &IntentClassifier{Gen: fakeGenerator{
		response: "```json\n{\"intent\": \"cancel\", \"time_preference\": \"friday\", \"meeting_purpose\": \"1:1\"}\n```",
	}}

	result := c.Classify(context.Background(), "cancel my friday 1:1")
	assert.Equal(t, models.IntentCancel, result.Intent)
	assert.Equal(t, "friday", result.TimePreference)
	assert.Equal(t, "1:1", result.MeetingPurpose)
}

func TestClassifyFallsBackToLabelLines(t *testing.T) {
	c := &IntentClassifier{Gen: fakeGenerator{
		response: "Sure! Here's my analysis:\nIntent: reschedule\nTime preference: next week\nMeeting purpose: Sprint planning\nHope that helps.",
	}}

	result := c.Classify(context.Background(), "move sprint planning to next week")
	assert.Equal(t, models.IntentReschedule, result.Intent)
	assert.Equal(t, "next week", result.TimePreference)
	assert.Equal(t, "Sprint planning", result.MeetingPurpose)
}

func TestClassifyUnknownIntentLabelFallsBackToDefault(t *testing.T) {
	c := &IntentClassifier{Gen: fakeGenerator{
		response: `{"intent": "order_pizza", "time_preference": "now", "meeting_purpose": "Lunch"}`,
	}}

	result := c.Classify(context.Background(), "order a pizza")
	assert.Equal(t, models.IntentBookAppointment, result.Intent)
	assert.Equal(t, "now", result.TimePreference)
	assert.Equal(t, "Lunch", result.MeetingPurpose)
}

func TestClassifyGibberishKeepsDefaults(t *testing.T) {
	c := &IntentClassifier{Gen: fakeGenerator{response: "I am not sure what you mean."}}

	result := c.Classify(context.Background(), "???")
	assert.Equal(t, models.DefaultIntentResult(), result)
}

func TestClassifyEmptyFieldsKeepDefaults(t *testing.T) {
	c := &IntentClassifier{Gen: fakeGenerator{
		response: `{"intent": "book_appointment", "time_preference": "", "meeting_purpose": ""}`,
	}}

	result := c.Classify(context.Background(), "book something")
	assert.Equal(t, "none", result.TimePreference)
	assert.Equal(t, "Meeting", result.MeetingPurpose)
}

func TestDisabledGeneratorAlwaysErrors(t *testing.T) {
	_, err := DisabledGenerator{}.GenerateContent(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrGeneratorDisabled)
}
