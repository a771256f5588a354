package agent

import (
	"context"

	"bookly/models"
)

// Service is the chat front door. Both operations always return a usable,
// non-empty sentence; failures inside the pipeline degrade to fallback text
// instead of propagating.
type Service interface {
	// ProcessMessage runs the propose phase of the booking pipeline for one
	// user message and returns the reply to show the user.
	ProcessMessage(ctx context.Context, sessionID, message string) string

	// ConfirmPending commits a previously proposed booking. The selection is
	// optional; without one the documented placeholder slot is booked.
	ConfirmPending(ctx context.Context, sessionID string, selection *models.SlotSelection) string
}
