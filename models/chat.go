package models

import "time"

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id,omitempty"` // minted server-side when absent
}

// ChatResponse is what the chat endpoint returns to the frontend.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// SlotSelection identifies the slot the user picked, either by index into the
// proposed slots or as an explicit interval.
type SlotSelection struct {
	Index *int       `json:"index,omitempty"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// ConfirmRequest is the payload for /api/chat/confirm, committing a
// previously proposed booking.
type ConfirmRequest struct {
	SessionID string         `json:"session_id" binding:"required"`
	Slot      *SlotSelection `json:"slot,omitempty"`
}
