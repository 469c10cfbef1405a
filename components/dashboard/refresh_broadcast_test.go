package dashboard

import (
	"context"
	"testing"
)

func TestBroadcastHookFanOut(t *testing.T) {
	hook := NewBroadcastHook()
	first, cancelFirst := hook.Subscribe()
	second, cancelSecond := hook.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	if hook.Subscribers() != 2 {
		t.Fatalf("subscribers = %d, want 2", hook.Subscribers())
	}

	event := WidgetEvent{Code: "mine.widget.safety", Reason: "toggle"}
	if err := hook.WidgetUpdated(context.Background(), event); err != nil {
		t.Fatalf("WidgetUpdated: %v", err)
	}

	for i, ch := range []<-chan WidgetEvent{first, second} {
		select {
		case got := <-ch:
			if got.Code != event.Code || got.Reason != event.Reason {
				t.Fatalf("subscriber %d got %+v", i, got)
			}
		default:
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
}

func TestBroadcastHookDropsWhenSubscriberIsSlow(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()

	// Fill the buffer without draining, then push one extra.
	for i := 0; i < subscriberBuffer+1; i++ {
		if err := hook.WidgetUpdated(context.Background(), WidgetEvent{Reason: "reorder"}); err != nil {
			t.Fatalf("WidgetUpdated: %v", err)
		}
	}

	received := 0
	for {
		select {
		case <-events:
			received++
			continue
		default:
		}
		break
	}
	if received != subscriberBuffer {
		t.Fatalf("received = %d, want %d", received, subscriberBuffer)
	}
	if hook.dropped != 1 {
		t.Fatalf("dropped = %d, want 1", hook.dropped)
	}
}

func TestBroadcastHookCancelIsIdempotent(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()

	cancel()
	cancel()

	if hook.Subscribers() != 0 {
		t.Fatalf("subscribers = %d after cancel", hook.Subscribers())
	}
	if _, ok := <-events; ok {
		t.Fatal("channel should be closed")
	}

	// Broadcasting after cancel must not panic or block.
	if err := hook.WidgetUpdated(context.Background(), WidgetEvent{Reason: "reset"}); err != nil {
		t.Fatalf("WidgetUpdated: %v", err)
	}
}
