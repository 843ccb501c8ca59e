package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single validated unit of inbound data. It exists only for the
// duration of one request: constructed by the schema validator, handed to the
// handler and its sinks, then discarded. It is never mutated after creation.
type Event struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	EventData map[string]any `json:"event_data"`
}

// StoredEvent wraps an accepted Event with server-side receipt metadata.
// ReceiptID is per-request and says nothing about uniqueness of EventID;
// duplicate submissions produce distinct receipts.
type StoredEvent struct {
	ReceiptID  uuid.UUID `json:"receipt_id"`
	ReceivedAt time.Time `json:"received_at"`
	Event      Event     `json:"event"`
}

// AckResponse is the fixed acceptance body for POST /events/.
// Accepted means structurally valid and authorized, not processed.
type AckResponse struct {
	Message string `json:"message"`
}

// ListResponse is the body for GET /events/.
type ListResponse struct {
	Data []StoredEvent `json:"data"`
}

// TranscriptionResponse is the body for POST /transcribe/.
type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
}
