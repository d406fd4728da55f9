package notify

import (
	"context"
	"log/slog"
	"time"
)

// Routing keys published on the events exchange.
const (
	EventUserCreated = "user.created"
)

// Event is a domain event handed to the broker as JSON.
type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Data       map[string]any `json:"data"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType string, data map[string]any) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
}

// Publisher delivers events. Callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// LogPublisher writes events to the log instead of a broker.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event Event) error {
	slog.Info("event published", "type", event.Type, "data", event.Data, "transport", "log")
	return nil
}

func (LogPublisher) Close() error { return nil }
