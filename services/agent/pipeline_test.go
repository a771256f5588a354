package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bookly/models"
	"bookly/services/calendar"
	ai "bookly/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sunday noon; the next business day is Monday 2025-01-06.
var sundayNoon = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// routedGenerator answers the intent prompt with a structured result and
// everything else conversationally.
type routedGenerator struct{}

func (routedGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "Classify the intent") {
		return `{"intent": "book_appointment", "time_preference": "monday", "meeting_purpose": "Project sync"}`, nil
	}
	return "Here are some times that could work. Which one suits you?", nil
}

type erroringGenerator struct{}

func (erroringGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("generation timed out")
}

type panickingGenerator struct{}

func (panickingGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	panic("generator bug")
}

type failingGateway struct{}

func (failingGateway) ListEvents(ctx context.Context, calendarID string, windowStart, windowEnd time.Time) ([]models.CalendarEvent, error) {
	return nil, errors.New("calendar unreachable")
}

func (failingGateway) CreateEvent(ctx context.Context, calendarID string, req models.BookingRequest) (string, error) {
	return "", errors.New("calendar unreachable")
}

// recordingGateway lists no events and remembers the last created booking.
type recordingGateway struct {
	created   []models.BookingRequest
	createErr error
}

func (g *recordingGateway) ListEvents(ctx context.Context, calendarID string, windowStart, windowEnd time.Time) ([]models.CalendarEvent, error) {
	return nil, nil
}

func (g *recordingGateway) CreateEvent(ctx context.Context, calendarID string, req models.BookingRequest) (string, error) {
	if g.createErr != nil {
		return "", g.createErr
	}
	g.created = append(g.created, req)
	return "evt-1", nil
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context, sessionID string) (*models.PendingBooking, error) {
	return nil, errors.New("store down")
}

func (failingStore) Set(ctx context.Context, sessionID string, pending *models.PendingBooking) error {
	return errors.New("store down")
}

func (failingStore) Clear(ctx context.Context, sessionID string) error {
	return errors.New("store down")
}

func newAgent(gen ai.TextGenerator, gw calendar.Gateway, store SessionStore) *DefaultAgentService {
	return &DefaultAgentService{
		Classifier: &ai.IntentClassifier{Gen: gen},
		Composer:   &ai.SuggestionComposer{Gen: gen},
		Gateway:    gw,
		Store:      store,
		CalendarID: "primary",
		SlotOpts:   calendar.FreeSlotOptions{DurationMinutes: 60},
		Clock:      fixedClock(sundayNoon),
	}
}

func TestProcessMessageProposesSlotsAndStoresPending(t *testing.T) {
	store := NewMemorySessionStore(30 * time.Minute)
	gw := calendar.NewStubGateway(fixedClock(sundayNoon))
	a := newAgent(routedGenerator{}, gw, store)

	reply := a.ProcessMessage(context.Background(), "sess-1", "book a project sync on monday")
	assert.Equal(t, "Here are some times that could work. Which one suits you?", reply)

	pending, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "Project sync", pending.MeetingPurpose)
	assert.Equal(t, "monday", pending.TimePreference)
	require.NotEmpty(t, pending.Slots)

	// Monday business hours, stub busy interval 10:00-11:00 excluded.
	first := pending.Slots[0]
	assert.Equal(t, time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), first.Start)
	busy := models.Interval{
		Start: time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 6, 11, 0, 0, 0, time.UTC),
	}
	for _, slot := range pending.Slots {
		assert.False(t, models.Interval{Start: slot.Start, End: slot.End}.Overlaps(busy))
	}
}

func TestProcessMessageSurvivesGeneratorFailure(t *testing.T) {
	store := NewMemorySessionStore(30 * time.Minute)
	gw := calendar.NewStubGateway(fixedClock(sundayNoon))
	a := newAgent(erroringGenerator{}, gw, store)

	reply := a.ProcessMessage(context.Background(), "sess-1", "book something tomorrow")
	assert.Equal(t, ai.ComposerFallback, reply)

	// Classification fell back to defaults but the proposal still happened.
	pending, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "Meeting", pending.MeetingPurpose)
	assert.Equal(t, "none", pending.TimePreference)
}

func TestProcessMessageSurvivesCalendarFailure(t *testing.T) {
	store := NewMemorySessionStore(30 * time.Minute)
	a := newAgent(routedGenerator{}, failingGateway{}, store)

	reply := a.ProcessMessage(context.Background(), "sess-1", "book a project sync")
	assert.NotEmpty(t, reply)

	pending, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Empty(t, pending.Slots)
}

func TestProcessMessageSurvivesStoreFailure(t *testing.T) {
	gw := calendar.NewStubGateway(fixedClock(sundayNoon))
	a := newAgent(routedGenerator{}, gw, failingStore{})

	reply := a.ProcessMessage(context.Background(), "sess-1", "book a project sync")
	assert.NotEmpty(t, reply)
}

func TestProcessMessageSurvivesStagePanic(t *testing.T) {
	store := NewMemorySessionStore(30 * time.Minute)
	gw := calendar.NewStubGateway(fixedClock(sundayNoon))
	a := newAgent(panickingGenerator{}, gw, store)

	reply := a.ProcessMessage(context.Background(), "sess-1", "book something")
	assert.NotEmpty(t, reply)
}

func TestConfirmPendingBooksChosenSlot(t *testing.T) {
	store := NewMemorySessionStore(30 * time.Minute)
	gw := &recordingGateway{}
	a := newAgent(routedGenerator{}, gw, store)

	a.ProcessMessage(context.Background(), "sess-1", "book a project sync on monday")

	idx := 0
	reply := a.ConfirmPending(context.Background(), "sess-1", &models.SlotSelection{Index: &idx})
	assert.True(t, strings.HasPrefix(reply, "✅ Successfully booked: Project sync for "), reply)

	require.Len(t, gw.created, 1)
	assert.Equal(t, time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), gw.created[0].Start)
	assert.Equal(t, "Project sync", gw.created[0].Title)

	// Session is consumed after a successful commit.
	pending, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestConfirmPendingWithoutSelectionBooksPlaceholder(t *testing.T) {
	store := NewMemorySessionStore(30 * time.Minute)
	gw := &recordingGateway{}
	a := newAgent(routedGenerator{}, gw, store)

	a.ProcessMessage(context.Background(), "sess-1", "book a project sync")
	reply := a.ConfirmPending(context.Background(), "sess-1", nil)
	assert.True(t, strings.HasPrefix(reply, "✅ Successfully booked:"), reply)

	// Historical placeholder: one day and two hours from "now", one hour long.
	require.Len(t, gw.created, 1)
	assert.Equal(t, sundayNoon.AddDate(0, 0, 1).Add(2*time.Hour), gw.created[0].Start)
	assert.Equal(t, gw.created[0].Start.Add(time.Hour), gw.created[0].End)
}

func TestConfirmPendingSurfacesCreateFailureVerbatim(t *testing.T) {
	store := NewMemorySessionStore(30 * time.Minute)
	gw := &recordingGateway{createErr: errors.New("insert rejected")}
	a := newAgent(routedGenerator{}, gw, store)

	a.ProcessMessage(context.Background(), "sess-1", "book a project sync")
	reply := a.ConfirmPending(context.Background(), "sess-1", nil)
	assert.Equal(t, "❌ Sorry, I couldn't book the appointment. Please try again.", reply)

	// The proposal is kept so the user can retry.
	pending, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.NotNil(t, pending)
}

func TestConfirmPendingUnknownSessionIsHandled(t *testing.T) {
	store := NewMemorySessionStore(30 * time.Minute)
	a := newAgent(routedGenerator{}, &recordingGateway{}, store)

	reply := a.ConfirmPending(context.Background(), "never-seen", nil)
	assert.Equal(t, noPendingMsg, reply)
}

func TestConfirmPendingStoreFailureIsHandled(t *testing.T) {
	a := newAgent(routedGenerator{}, &recordingGateway{}, failingStore{})

	reply := a.ConfirmPending(context.Background(), "sess-1", nil)
	assert.Equal(t, noPendingMsg, reply)
}

// droppingGenerator simulates the caller disconnecting while the suggestion
// is being composed.
type droppingGenerator struct {
	cancel context.CancelFunc
}

func (g droppingGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "Classify the intent") {
		return `{"intent": "book_appointment", "time_preference": "monday", "meeting_purpose": "Project sync"}`, nil
	}
	g.cancel()
	return "Here are some times that could work.", nil
}

func TestProcessMessageCancelledMidRunSkipsProposalWrite(t *testing.T) {
	store := NewMemorySessionStore(30 * time.Minute)
	gw := calendar.NewStubGateway(fixedClock(sundayNoon))
	ctx, cancel := context.WithCancel(context.Background())
	a := newAgent(droppingGenerator{cancel: cancel}, gw, store)

	reply := a.ProcessMessage(ctx, "sess-1", "book a project sync on monday")
	assert.Contains(t, reply, "I apologize")

	pending, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestProcessMessageAbandonsCancelledRequest(t *testing.T) {
	store := NewMemorySessionStore(30 * time.Minute)
	gw := calendar.NewStubGateway(fixedClock(sundayNoon))
	a := newAgent(routedGenerator{}, gw, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reply := a.ProcessMessage(ctx, "sess-1", "book something")
	assert.NotEmpty(t, reply)
	assert.Contains(t, reply, "I apologize")
}
