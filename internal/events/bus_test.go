package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	BaseEvent
	Message string `json:"message"`
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	// Subscribe before publishing
	ch := bus.Subscribe("test.created", 10)

	e := &testEvent{BaseEvent: NewBaseEvent("test.created", "v1"), Message: "hello"}
	err := bus.Publish(context.Background(), e)
	require.NoError(t, err)

	select {
	case received := <-ch:
		assert.Equal(t, "test.created", received.EventType())
		assert.Equal(t, "v1", received.ViewID())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.SubscribeAll(10)

	e1 := &testEvent{BaseEvent: NewBaseEvent("test.first", "v1"), Message: "first"}
	e2 := &testEvent{BaseEvent: NewBaseEvent("test.second", "v2"), Message: "second"}

	require.NoError(t, bus.Publish(context.Background(), e1))
	require.NoError(t, bus.Publish(context.Background(), e2))

	received := make([]Event, 0, 2)
	timeout := time.After(time.Second)
	for i := 0; i < 2; i++ {
		select {
		case e := <-ch:
			received = append(received, e)
		case <-timeout:
			t.Fatalf("timeout waiting for event %d", i+1)
		}
	}

	assert.Len(t, received, 2)
}

func TestBus_SubscribeView(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch, cancel := bus.SubscribeView("mine", 10)

	require.NoError(t, bus.Publish(context.Background(), &testEvent{BaseEvent: NewBaseEvent("test.event", "other")}))
	require.NoError(t, bus.Publish(context.Background(), &testEvent{BaseEvent: NewBaseEvent("test.event", "mine"), Message: "ok"}))

	select {
	case e := <-ch:
		assert.Equal(t, "mine", e.ViewID())
		assert.Equal(t, "ok", e.(*testEvent).Message)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for view event")
	}

	cancel()

	// Channel closes once the underlying subscription is gone
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("view channel not closed after cancel")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.Subscribe("test.event", 10)
	bus.Unsubscribe(ch)

	// Publish should not block even with no subscribers
	e := &testEvent{BaseEvent: NewBaseEvent("test.event", ""), Message: "hello"}
	require.NoError(t, bus.Publish(context.Background(), e))

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")
}

func TestBus_FullChannelDrops(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.Subscribe("test.event", 1)
	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Publish(context.Background(), &testEvent{BaseEvent: NewBaseEvent("test.event", "")}))
	}
	assert.Len(t, ch, 1)
}

func TestBus_Close(t *testing.T) {
	bus := NewBus(nil)
	ch := bus.SubscribeAll(1)

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after close is a no-op
	require.NoError(t, bus.Publish(context.Background(), &testEvent{BaseEvent: NewBaseEvent("test.event", "")}))

	late := bus.Subscribe("test.event", 1)
	_, ok = <-late
	assert.False(t, ok)
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.SubscribeAll(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := &testEvent{BaseEvent: NewBaseEvent("test.concurrent", ""), Message: "concurrent"}
			_ = bus.Publish(context.Background(), e)
		}()
	}

	wg.Wait()

	count := 0
	timeout := time.After(time.Second)
loop:
	for {
		select {
		case <-ch:
			count++
			if count == 10 {
				break loop
			}
		case <-timeout:
			break loop
		}
	}

	assert.Equal(t, 10, count)
}

func TestBus_SubscribeViewCancelTwice(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	_, cancel := bus.SubscribeView("mine", 1)
	cancel()
	cancel()

	// Close after cancel must not close the channel again
	require.NoError(t, bus.Close())
}

func TestBus_ViewAndTypeSubscribersBothReceive(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	view, cancel := bus.SubscribeView("v1", 2)
	defer cancel()
	typed := bus.Subscribe(TypeListReplaced, 2)

	e := &testEvent{BaseEvent: NewBaseEvent(TypeListReplaced, "v1")}
	require.NoError(t, bus.Publish(context.Background(), e))

	assert.Len(t, view, 1)
	assert.Len(t, typed, 1)
}
