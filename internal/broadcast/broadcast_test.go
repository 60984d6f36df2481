package broadcast

import (
	"encoding/json"
	"testing"
	"time"

	"galmaetgil/internal/domain"
	"galmaetgil/internal/events"
)

func TestNewBroadcaster(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)
	if b == nil {
		t.Fatal("NewBroadcaster() returned nil")
	}
}

func TestBroadcaster_SubscribeUnsubscribe(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)

	ch := b.Subscribe()
	if ch == nil {
		t.Fatal("Subscribe() returned nil")
	}

	b.Mu.Lock()
	if len(b.Clients) != 1 {
		t.Errorf("clients count = %d, want 1", len(b.Clients))
	}
	b.Mu.Unlock()

	b.Unsubscribe(ch)

	b.Mu.Lock()
	if len(b.Clients) != 0 {
		t.Errorf("clients count after unsubscribe = %d, want 0", len(b.Clients))
	}
	b.Mu.Unlock()
}

func TestBroadcaster_Broadcast(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)

	ch1 := b.Subscribe()
	ch2 := b.Subscribe()

	b.Broadcast(Message{Event: "test-event", UserID: 3, Data: "hello"})

	for i, ch := range []chan Message{ch1, ch2} {
		select {
		case msg := <-ch:
			if msg.Event != "test-event" || msg.Data != "hello" || msg.UserID != 3 {
				t.Errorf("ch%d got %+v", i+1, msg)
			}
		case <-time.After(1 * time.Second):
			t.Fatalf("ch%d timed out", i+1)
		}
	}

	b.Unsubscribe(ch1)
	b.Unsubscribe(ch2)
}

func TestBroadcaster_SkipsFullChannels(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)

	ch := b.Subscribe()

	// Fill the channel buffer (capacity 10)
	for i := 0; i < 10; i++ {
		b.Broadcast(Message{Event: "fill"})
	}

	done := make(chan bool)
	go func() {
		b.Broadcast(Message{Event: "overflow"})
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Broadcast blocked on full channel")
	}

	b.Unsubscribe(ch)
}

func TestBroadcaster_BadgeForwarding(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)
	ch := b.Subscribe()

	bus.BadgeUnlocks <- events.BadgeUnlockedEvent{UserID: 9, Badge: domain.Badge{ID: 3, Name: "장거리 트래커"}, Primary: true}

	select {
	case msg := <-ch:
		if msg.Event != EventBadgeUnlocked || msg.UserID != 9 {
			t.Fatalf("got %+v", msg)
		}
		var p badgePayload
		if err := json.Unmarshal([]byte(msg.Data), &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if p.Badge.ID != 3 || !p.Primary {
			t.Errorf("payload = %+v", p)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for badge broadcast")
	}

	b.Unsubscribe(ch)
}

func TestBroadcaster_CompletionAndReviewForwarding(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)
	ch := b.Subscribe()

	bus.Completions <- events.CompletionRecordedEvent{
		Record:    domain.CompletionRecord{UserID: 2, CourseID: 4, CumulativeCount: 3},
		FirstTime: false,
	}
	bus.Reviews <- events.ReviewPostedEvent{Review: domain.Review{ID: 10, UserID: 2, CourseID: 4}}
	bus.Comments <- events.CommentPostedEvent{Comment: domain.Comment{ID: 1, ReviewID: 10, UserID: 3}}

	got := map[string]bool{}
	for i := 0; i < 3; i++ {
		select {
		case msg := <-ch:
			got[msg.Event] = true
		case <-time.After(1 * time.Second):
			t.Fatal("timed out waiting for forwarded events")
		}
	}
	if !got[EventCompletion] || !got[EventReview] || !got[EventComment] {
		t.Errorf("forwarded events = %v", got)
	}

	b.Unsubscribe(ch)
}

func TestBroadcaster_StopsWhenBusCloses(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)
	bus.Close()

	// Direct broadcasts keep working after the forwarder exits.
	ch := b.Subscribe()
	b.Broadcast(Message{Event: "after-close"})
	select {
	case msg := <-ch:
		if msg.Event != "after-close" {
			t.Errorf("got %+v", msg)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out")
	}
	b.Unsubscribe(ch)
}
