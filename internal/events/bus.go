package events

import (
	"context"
	"log/slog"
	"sync"
)

// subscription receives the events matching its filters. Empty filters
// match everything.
type subscription struct {
	ch        chan Event
	eventType string
	viewID    string
}

func (s *subscription) matches(e Event) bool {
	if s.eventType != "" && s.eventType != e.EventType() {
		return false
	}
	return s.viewID == "" || s.viewID == e.ViewID()
}

// Bus fans view and player events out to subscribers. Delivery never blocks:
// a subscriber that falls behind loses events rather than stalling the state
// machine that published them.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	logger *slog.Logger
	closed bool
}

// NewBus creates a new event bus.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Publish delivers e to every matching subscriber.
func (b *Bus) Publish(_ context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for _, s := range b.subs {
		if !s.matches(e) {
			continue
		}
		select {
		case s.ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"view_id", e.ViewID())
		}
	}
	return nil
}

func (b *Bus) subscribe(eventType, viewID string, bufferSize int) chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, &subscription{ch: ch, eventType: eventType, viewID: viewID})
	return ch
}

// Subscribe returns a channel for events of one type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.subscribe(eventType, "", bufferSize)
}

// SubscribeAll returns a channel for all events.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.subscribe("", "", bufferSize)
}

// SubscribeView returns events produced by one view or player, and a cancel
// function that ends the subscription and closes the channel.
func (b *Bus) SubscribeView(viewID string, bufferSize int) (<-chan Event, func()) {
	ch := b.subscribe("", viewID, bufferSize)
	return ch, func() { b.Unsubscribe(ch) }
}

// Unsubscribe removes a subscription and closes its channel. Unknown or
// already removed channels are ignored.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ch == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(s.ch)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	return nil
}
