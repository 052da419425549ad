package models

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventType represents the type of domain event.
type EventType string

const (
	EventBookCreated     EventType = "book.created"
	EventBookUpdated     EventType = "book.updated"
	EventBookDeleted     EventType = "book.deleted"
	EventUserCreated     EventType = "user.created"
	EventUserUpdated     EventType = "user.updated"
	EventUserDeleted     EventType = "user.deleted"
	EventCheckoutCreated EventType = "checkout.created"
)

// Event is published after a successful write. Data holds the affected
// Book, User or UserBook, or just the id for deletions.
type Event struct {
	EventID       string    `json:"event_id"`
	CorrelationID string    `json:"correlation_id"`
	EventType     EventType `json:"event_type"`
	Timestamp     time.Time `json:"timestamp"`
	Data          any       `json:"data"`
}

// NewEvent stamps a new event with a fresh id and the current time.
func NewEvent(eventType EventType, correlationID string, data any) Event {
	return Event{
		EventID:       uuid.New().String(),
		CorrelationID: correlationID,
		EventType:     eventType,
		Timestamp:     time.Now().UTC(),
		Data:          data,
	}
}

// Encode returns the JSON wire form of the event.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DeletedRef is the payload of deletion events.
type DeletedRef struct {
	ID string `json:"id"`
}
