package eventbus

import (
	"testing"
	"time"
)

func TestEventBus_PublishAndSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe("test.topic")

	bus.Publish("test.topic", "hello")

	select {
	case evt := <-ch:
		if evt.Topic != "test.topic" {
			t.Errorf("expected topic 'test.topic', got %q", evt.Topic)
		}
		if evt.Payload != "hello" {
			t.Errorf("expected payload 'hello', got %v", evt.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout: expected event to be received within 100ms")
	}
}

func TestEventBus_MultipleSubscribers_AllReceive(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe("multi.topic")
	ch2 := bus.Subscribe("multi.topic")

	bus.Publish("multi.topic", 42)

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case evt := <-ch:
			if evt.Payload != 42 {
				t.Errorf("subscriber %d: expected payload 42, got %v", i, evt.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("subscriber %d: timeout waiting for event", i)
		}
	}
}

func TestEventBus_DifferentTopics_NoInterference(t *testing.T) {
	bus := New()
	chA := bus.Subscribe("topic.a")
	chB := bus.Subscribe("topic.b")

	bus.Publish("topic.a", "for-a")

	select {
	case evt := <-chA:
		if evt.Payload != "for-a" {
			t.Errorf("topic.a: unexpected payload %v", evt.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("topic.a: timeout waiting for event")
	}

	// topic.b should have received nothing
	select {
	case evt := <-chB:
		t.Errorf("topic.b: received unexpected event: %v", evt)
	default:
		// correct: no event
	}
}

func TestEventBus_NonBlockingPublish_FullBuffer(t *testing.T) {
	bus := New()
	// Subscribe but never consume; buffer will fill up
	_ = bus.Subscribe("overflow.topic")

	// Publish more events than the buffer size; must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i <= defaultBufferSize+10; i++ {
			bus.Publish("overflow.topic", i)
		}
		close(done)
	}()

	select {
	case <-done:
		// correct: publish never blocked
	case <-time.After(500 * time.Millisecond):
		t.Error("Publish blocked when buffer was full (should be non-blocking)")
	}

	if got := bus.Dropped(); got != 11 {
		t.Errorf("Dropped() = %d; want 11", got)
	}
}

func TestEventBus_Close_ClosesSubscribers(t *testing.T) {
	bus := New()
	ch := bus.Subscribe("chat.exchange")

	if n := bus.Subscribers("chat.exchange"); n != 1 {
		t.Fatalf("Subscribers() = %d; want 1", n)
	}

	bus.Publish("chat.exchange", "last")
	bus.Close()
	bus.Close()

	evt, ok := <-ch
	if !ok || evt.Payload != "last" {
		t.Fatalf("expected buffered event before close, got %v ok=%v", evt, ok)
	}
	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed after Close")
	}

	// Publishing after Close must not panic.
	bus.Publish("chat.exchange", "ignored")

	if n := bus.Subscribers("chat.exchange"); n != 0 {
		t.Errorf("Subscribers() after Close = %d; want 0", n)
	}

	late := bus.Subscribe("chat.exchange")
	if _, ok := <-late; ok {
		t.Fatal("expected Subscribe after Close to return a closed channel")
	}
}
