// Package events carries state-machine signals to the presentation layer.
package events

import (
	"context"
	"time"
)

// Event is the base interface all events implement.
type Event interface {
	EventType() string
	ViewID() string // view that produced the event, "" if unscoped
	OccurredAt() time.Time
}

// Publisher accepts events. *Bus implements it.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	View      string    `json:"view_id,omitempty"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) ViewID() string        { return e.View }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a BaseEvent with the current timestamp.
func NewBaseEvent(eventType, viewID string) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		View:      viewID,
		Timestamp: time.Now(),
	}
}
